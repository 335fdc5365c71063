package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCellOccupiedBounds(t *testing.T) {
	b := NewBoard(18, 10)
	assert.True(t, b.IsCellOccupied(0, -1))
	assert.True(t, b.IsCellOccupied(0, 10))
	assert.True(t, b.IsCellOccupied(18, 0))
	assert.False(t, b.IsCellOccupied(-3, 5))
	assert.False(t, b.IsCellOccupied(17, 9))
}

func TestCollides(t *testing.T) {
	b := NewBoard(18, 10)
	i := Piece{Kind: KindI, Shape: KindI.Definition().Shape}

	assert.True(t, Collides(b, i.Moved(0, -1)))
	assert.True(t, Collides(b, i.Moved(0, 7)))
	assert.False(t, Collides(b, i.Moved(0, 6)))
	assert.True(t, Collides(b, i.Moved(18, 0)))
	assert.False(t, Collides(b, i.Moved(-1, 0)))

	b.Place(i.Moved(17, 0))
	assert.True(t, Collides(b, i.Moved(17, 3)))
	assert.False(t, Collides(b, i.Moved(16, 3)))
}

func TestPlaceSkipsRowsAboveBoard(t *testing.T) {
	b := NewBoard(4, 4)
	o := Piece{Kind: KindO, Shape: KindO.Definition().Shape, Row: -1, Col: 1}
	b.Place(o)
	assert.Equal(t, ".OO.\n....\n....\n....", b.String())
}

func TestClearFullRowsNone(t *testing.T) {
	b, err := ParseBoard(
		"....",
		"I...",
		"IT.T",
	)
	require.NoError(t, err)
	before := b.Clone()

	assert.Equal(t, 0, b.ClearFullRows())
	assert.True(t, before.Equal(b))
}

func TestClearFullRowsShiftsDown(t *testing.T) {
	b, err := ParseBoard(
		"....",
		".L..",
		"ZZZZ",
		"T..T",
	)
	require.NoError(t, err)

	assert.Equal(t, 1, b.ClearFullRows())
	assert.Equal(t, "....\n....\n.L..\nT..T", b.String())
}

func TestClearFullRowsNonAdjacent(t *testing.T) {
	b, err := ParseBoard(
		"J...",
		"IIII",
		".S..",
		"OOOO",
	)
	require.NoError(t, err)

	assert.Equal(t, 2, b.ClearFullRows())
	assert.Equal(t, "....\n....\nJ...\n.S..", b.String())
}

func TestParseBoardRejectsRaggedRows(t *testing.T) {
	_, err := ParseBoard("....", "...")
	assert.Error(t, err)
	_, err = ParseBoard()
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(2, 2)
	c := b.Clone()
	c.Place(Piece{Kind: KindO, Shape: KindO.Definition().Shape})
	assert.Equal(t, "..\n..", b.String())
	assert.Equal(t, "OO\nOO", c.String())
}

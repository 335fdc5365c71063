package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	assert.Len(t, Kinds(), 7)
	assert.Equal(t, "####", KindI.Definition().Shape.String())
	assert.Equal(t, "###\n.#.", KindT.Definition().Shape.String())
	assert.Equal(t, "#..\n###", KindJ.Definition().Shape.String())
	assert.Equal(t, "###\n#..", KindL.Definition().Shape.String())
	assert.False(t, numKinds.Valid())
	assert.Equal(t, "?", Kind(42).String())
}

func TestDefinitionReturnsCopy(t *testing.T) {
	def := KindO.Definition()
	def.Shape[0][0] = false
	assert.True(t, KindO.Definition().Shape[0][0])
}

func TestRotateClockwise(t *testing.T) {
	vertical := KindI.Definition().Shape.Rotate()
	assert.Equal(t, 4, vertical.Rows())
	assert.Equal(t, 1, vertical.Cols())

	assert.Equal(t, ".#\n##\n.#", KindT.Definition().Shape.Rotate().String())
	assert.Equal(t, "##\n#.\n#.", KindJ.Definition().Shape.Rotate().String())
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := k.Definition().Shape
			r := s.Rotate().Rotate().Rotate().Rotate()
			assert.True(t, s.Equal(r), "got\n%s", r)
		})
	}
}

func TestRotateKeepsCellCount(t *testing.T) {
	count := func(s Shape) int {
		n := 0
		for _, row := range s {
			for _, v := range row {
				if v {
					n++
				}
			}
		}
		return n
	}
	for _, k := range Kinds() {
		s := k.Definition().Shape
		assert.Equal(t, count(s), count(s.Rotate()), k.String())
	}
}

func TestSpawnPiece(t *testing.T) {
	i := SpawnPiece(KindI, 10)
	assert.Equal(t, 0, i.Row)
	assert.Equal(t, 3, i.Col)

	o := SpawnPiece(KindO, 10)
	assert.Equal(t, -1, o.Row)
	assert.Equal(t, 4, o.Col)

	var cells [][2]int
	o.Each(func(row, col int) bool {
		cells = append(cells, [2]int{row, col})
		return true
	})
	require.Len(t, cells, 4)
	assert.Equal(t, [2]int{-1, 4}, cells[0])
	assert.Equal(t, [2]int{0, 5}, cells[3])
}

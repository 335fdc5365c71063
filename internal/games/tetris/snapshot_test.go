package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotOverlaysActivePiece(t *testing.T) {
	r := newTestRules(KindO, KindT)
	s, _ := r.Start(r.NewState(), "ada", 30)

	snap := s.Snapshot()
	assert.Equal(t, 18, snap.Rows)
	assert.Equal(t, 10, snap.Cols)
	assert.Equal(t, PhaseRunning, snap.Phase)
	assert.False(t, snap.Paused())
	assert.Equal(t, KindT, snap.Next)
	assert.Equal(t, 30, snap.HighScore)

	require.NotNil(t, snap.Active)
	assert.Equal(t, 16, snap.Active.GhostRow)
	assert.Equal(t, KindO.Cell(), snap.CellAt(0, 4))
	assert.Equal(t, Empty, snap.CellAt(0, 3))
	assert.True(t, snap.GhostAt(17, 5))
	assert.False(t, snap.GhostAt(17, 3))
}

func TestSnapshotIsDetached(t *testing.T) {
	r := newTestRules(KindO)
	s, _ := r.Start(r.NewState(), "ada", 0)
	snap := s.Snapshot()

	snap.Cells[17][0] = KindZ.Cell()
	snap.Active.Shape[0][0] = false
	assert.Equal(t, Empty, s.Board.At(17, 0))
	assert.True(t, s.Active.Shape[0][0])
}

func TestSnapshotOfIdleState(t *testing.T) {
	snap := State{}.Snapshot()
	assert.Nil(t, snap.Active)
	assert.Zero(t, snap.Rows)
	assert.Equal(t, Empty, snap.CellAt(0, 0))
}

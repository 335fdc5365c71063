package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Snapshot is an immutable copy of everything a renderer needs.
type Snapshot struct {
	Rows       int
	Cols       int
	Cells      [][]Cell
	Active     *ActiveView
	Next       Kind
	Phase      Phase
	PlayerName string
	Score      int
	HighScore  int
	Lines      int
	Interval   time.Duration
	LastResult *ScoreRecord
}

// ActiveView describes the falling piece and where it would land.
type ActiveView struct {
	Kind     Kind
	Shape    Shape
	Row      int
	Col      int
	GhostRow int
	Color    core.Color
}

// Paused reports whether the game is paused.
func (s Snapshot) Paused() bool { return s.Phase == PhasePaused }

// CellAt returns the cell to draw at (row, col), with the active piece
// overlaid on the settled board.
func (s Snapshot) CellAt(row, col int) Cell {
	if s.Active != nil {
		r, c := row-s.Active.Row, col-s.Active.Col
		if r >= 0 && r < s.Active.Shape.Rows() && c >= 0 && c < s.Active.Shape.Cols() && s.Active.Shape[r][c] {
			return s.Active.Kind.Cell()
		}
	}
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return Empty
	}
	return s.Cells[row][col]
}

// GhostAt reports whether (row, col) is covered by the landing preview.
func (s Snapshot) GhostAt(row, col int) bool {
	if s.Active == nil {
		return false
	}
	r, c := row-s.Active.GhostRow, col-s.Active.Col
	return r >= 0 && r < s.Active.Shape.Rows() && c >= 0 && c < s.Active.Shape.Cols() && s.Active.Shape[r][c]
}

// Snapshot copies the state for rendering.
func (st State) Snapshot() Snapshot {
	snap := Snapshot{
		Next:       st.Next,
		Phase:      st.Phase,
		PlayerName: st.PlayerName,
		Score:      st.Score,
		HighScore:  st.HighScore,
		Lines:      st.Lines,
		Interval:   st.Speed.Interval,
	}
	if st.Board != nil {
		snap.Rows, snap.Cols = st.Board.Rows(), st.Board.Cols()
		snap.Cells = st.Board.Cells()
	}
	if st.LastResult != nil {
		rec := *st.LastResult
		snap.LastResult = &rec
	}
	if st.Active != nil && st.Board != nil {
		p := *st.Active
		ghost := p
		for {
			down := ghost.Moved(1, 0)
			if Collides(st.Board, down) {
				break
			}
			ghost = down
		}
		snap.Active = &ActiveView{
			Kind:     p.Kind,
			Shape:    p.Shape.Clone(),
			Row:      p.Row,
			Col:      p.Col,
			GhostRow: ghost.Row,
			Color:    p.Kind.Color(),
		}
	}
	return snap
}

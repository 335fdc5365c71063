// Package tetris implements the falling-block puzzle engine: piece catalog,
// board, collision and rotation resolution, line clearing, scoring and the
// session state machine as pure transition functions over a State record.
//
// Nothing here draws, sleeps or performs I/O. Timing and persistence live in
// the session package; drawing lives in the terminal platform.
package tetris

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven catalog pieces.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL

	numKinds
)

// Shape is a rows x cols occupancy matrix. Shapes are never mutated in place;
// rotation always builds a new matrix.
type Shape [][]bool

// Definition is a catalog entry.
type Definition struct {
	Kind  Kind
	Name  string
	Shape Shape
	Color core.Color
}

var catalog = [numKinds]Definition{
	{KindI, "I", parseShape("####"), core.ColorCyan},
	{KindO, "O", parseShape("##", "##"), core.ColorYellow},
	{KindT, "T", parseShape("###", ".#."), core.ColorPurple},
	{KindS, "S", parseShape(".##", "##."), core.ColorGreen},
	{KindZ, "Z", parseShape("##.", ".##"), core.ColorRed},
	{KindJ, "J", parseShape("#..", "###"), core.ColorBlue},
	{KindL, "L", parseShape("###", "#.."), core.ColorOrange},
}

// Kinds returns every catalog kind in catalog order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k names a catalog piece.
func (k Kind) Valid() bool {
	return k < numKinds
}

// Definition returns the catalog entry for k. The returned shape is a copy.
func (k Kind) Definition() Definition {
	if !k.Valid() {
		return Definition{Kind: k, Name: "?"}
	}
	def := catalog[k]
	def.Shape = def.Shape.Clone()
	return def
}

// Color returns the display color of k.
func (k Kind) Color() core.Color {
	if !k.Valid() {
		return core.ColorDefault
	}
	return catalog[k].Color
}

// Cell returns the board cell value written when a piece of kind k locks.
func (k Kind) Cell() Cell {
	return Cell(k) + 1
}

func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return catalog[k].Name
}

// parseShape builds a shape from rows of '#' (filled) and '.' (empty).
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for i, row := range rows {
		s[i] = make([]bool, len(row))
		for j, ch := range row {
			s[i][j] = ch == '#'
		}
	}
	return s
}

// Rows returns the number of matrix rows.
func (s Shape) Rows() int {
	return len(s)
}

// Cols returns the number of matrix columns.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for i := range s {
		c[i] = append([]bool(nil), s[i]...)
	}
	return c
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Rows() != o.Rows() || s.Cols() != o.Cols() {
		return false
	}
	for i := range s {
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Rotate returns s turned 90 degrees clockwise. A rows x cols matrix becomes
// cols x rows; row i of the result is column i of s read bottom to top.
func (s Shape) Rotate() Shape {
	rows, cols := s.Rows(), s.Cols()
	out := make(Shape, cols)
	for i := range out {
		out[i] = make([]bool, rows)
		for j := range out[i] {
			out[i][j] = s[rows-1-j][i]
		}
	}
	return out
}

func (s Shape) String() string {
	var b strings.Builder
	for i, row := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// Piece is the active falling piece: its current orientation and the board
// position of the shape's top-left corner.
type Piece struct {
	Kind  Kind
	Shape Shape
	Row   int
	Col   int
}

// SpawnPiece places a fresh piece of kind k horizontally centered with its
// bottom shape row on board row 0, so taller shapes start partly above the board.
func SpawnPiece(k Kind, boardCols int) Piece {
	shape := k.Definition().Shape
	return Piece{
		Kind:  k,
		Shape: shape,
		Row:   1 - shape.Rows(),
		Col:   boardCols/2 - (shape.Cols()+1)/2,
	}
}

// Moved returns p shifted by (dr, dc). The shape is shared, not copied.
func (p Piece) Moved(dr, dc int) Piece {
	p.Row += dr
	p.Col += dc
	return p
}

// Each calls fn with the board coordinates of every occupied sub-cell and
// stops early when fn returns false.
func (p Piece) Each(fn func(row, col int) bool) {
	for i, line := range p.Shape {
		for j, filled := range line {
			if !filled {
				continue
			}
			if !fn(p.Row+i, p.Col+j) {
				return
			}
		}
	}
}

// Clone returns a copy of p that shares nothing with it.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

package tetris

import (
	"fmt"
	"strings"
)

// Cell holds either Empty or the Kind.Cell() value of the piece that filled it.
type Cell uint8

// Empty is the value of an unoccupied cell.
const Empty Cell = 0

// Kind returns the piece kind that filled the cell. ok is false for empty cells.
func (c Cell) Kind() (k Kind, ok bool) {
	if c == Empty {
		return 0, false
	}
	return Kind(c - 1), true
}

// Board is the fixed rows x cols grid of locked cells. Row 0 is the top.
type Board struct {
	rows  int
	cols  int
	cells [][]Cell
}

// NewBoard creates an empty board.
func NewBoard(rows, cols int) *Board {
	b := &Board{rows: rows, cols: cols}
	b.cells = make([][]Cell, rows)
	for r := range b.cells {
		b.cells[r] = make([]Cell, cols)
	}
	return b
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the board width.
func (b *Board) Cols() int {
	return b.cols
}

// At returns the cell at (row, col), or Empty when out of range.
func (b *Board) At(row, col int) Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Empty
	}
	return b.cells[row][col]
}

// IsCellOccupied reports whether (row, col) blocks a piece. Columns outside
// the board and rows at or below the floor are occupied; rows above the top
// are free so pieces can spawn partly off-board.
func (b *Board) IsCellOccupied(row, col int) bool {
	if col < 0 || col >= b.cols || row >= b.rows {
		return true
	}
	if row < 0 {
		return false
	}
	return b.cells[row][col] != Empty
}

// Place writes every occupied sub-cell of p into the grid. Sub-cells above
// row 0 are dropped.
func (b *Board) Place(p Piece) {
	value := p.Kind.Cell()
	p.Each(func(row, col int) bool {
		if row >= 0 && row < b.rows && col >= 0 && col < b.cols {
			b.cells[row][col] = value
		}
		return true
	})
}

// ClearFullRows removes every completely filled row, shifts the remaining
// rows down keeping their order, refills the top with empty rows and returns
// how many rows were removed.
func (b *Board) ClearFullRows() int {
	kept := make([][]Cell, 0, b.rows)
	for _, row := range b.cells {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}

	cleared := b.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]Cell, cleared, b.rows)
	for i := range fresh {
		fresh[i] = make([]Cell, b.cols)
	}
	b.cells = append(fresh, kept...)
	return cleared
}

func rowFull(row []Cell) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{rows: b.rows, cols: b.cols, cells: make([][]Cell, b.rows)}
	for r := range b.cells {
		c.cells[r] = append([]Cell(nil), b.cells[r]...)
	}
	return c
}

// Cells returns a copy of the grid.
func (b *Board) Cells() [][]Cell {
	return b.Clone().cells
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(o *Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c] != o.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the grid with '.' for empty cells and piece letters otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	for r, row := range b.cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if k, ok := c.Kind(); ok {
				sb.WriteString(k.String())
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseBoard builds a board from rows of '.' (empty) and piece letters.
// Any other non-'.' character fills the cell with an I piece.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("tetris: board needs at least one row")
	}
	b := NewBoard(len(rows), len(rows[0]))
	for r, line := range rows {
		if len(line) != b.cols {
			return nil, fmt.Errorf("tetris: row %d has %d columns, expected %d", r, len(line), b.cols)
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			b.cells[r][c] = kindForLetter(ch).Cell()
		}
	}
	return b, nil
}

func kindForLetter(ch rune) Kind {
	for _, def := range catalog {
		if def.Name == string(ch) {
			return def.Kind
		}
	}
	return KindI
}

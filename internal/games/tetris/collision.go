package tetris

// Collides reports whether p cannot legally sit on b: some occupied sub-cell
// is left of column 0, right of the last column, below the floor, or on an
// occupied cell at row >= 0. Sub-cells above the board never collide.
func Collides(b *Board, p Piece) bool {
	hit := false
	p.Each(func(row, col int) bool {
		if b.IsCellOccupied(row, col) {
			hit = true
			return false
		}
		return true
	})
	return hit
}

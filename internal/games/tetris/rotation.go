package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Kick is a positional adjustment tried when a rotated shape collides.
// Positive DX moves right, positive DY moves down.
type Kick struct {
	DX int
	DY int
}

// DefaultKicks is tried in order: in place, one left, one right, two left, two right.
var DefaultKicks = []Kick{{0, 0}, {-1, 0}, {1, 0}, {-2, 0}, {2, 0}}

// RotateWithKicks turns p clockwise and returns the first placement from
// kicks that does not collide. When every offset collides it returns p
// unchanged and false.
func RotateWithKicks(b *Board, p Piece, kicks []Kick) (Piece, bool) {
	rotated := p
	rotated.Shape = p.Shape.Rotate()

	for _, k := range kicks {
		candidate := rotated.Moved(k.DY, k.DX)
		if Collides(b, candidate) {
			continue
		}
		candidate.Col = core.Clamp(candidate.Col, 0, b.Cols()-candidate.Shape.Cols())
		return candidate, true
	}
	return p, false
}

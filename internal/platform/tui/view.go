package tui

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

const (
	cellWidth  = 2 // screen columns per board cell
	panelWidth = 20
	panelGap   = 2
)

// prompt is the name entry state drawn over the board between games.
type prompt struct {
	Name    string
	Status  string
	Pending bool
}

// layout positions the board and side panel centered on the screen.
type layout struct {
	board core.Rect
	panel core.Rect
}

func computeLayout(scr *core.Screen, snap tetris.Snapshot) layout {
	boardW := snap.Cols*cellWidth + 2
	boardH := snap.Rows + 2
	total := boardW + panelGap + panelWidth

	x := max((scr.Width()-total)/2, 0)
	y := max((scr.Height()-boardH)/2, 0)
	return layout{
		board: core.NewRect(x, y, boardW, boardH),
		panel: core.NewRect(x+boardW+panelGap, y, panelWidth, boardH),
	}
}

// drawGame renders a snapshot into scr. p is drawn when the game is not
// in play.
func drawGame(scr *core.Screen, snap tetris.Snapshot, p prompt) {
	scr.Clear()
	l := computeLayout(scr, snap)

	drawBoard(scr, l.board, snap)
	drawPanel(scr, l.panel, snap)

	switch snap.Phase {
	case tetris.PhasePaused:
		drawOverlay(scr, l.board, core.ColorYellow, "PAUSED", "", "p to resume")
	case tetris.PhaseGameOver:
		drawOverlay(scr, l.board, core.ColorRed, "GAME OVER", "", "saving score...")
	case tetris.PhaseAwaitingStart:
		drawStartPrompt(scr, l.board, snap, p)
	}
}

func drawBoard(scr *core.Screen, r core.Rect, snap tetris.Snapshot) {
	scr.DrawBox(r, core.ColorGray)
	for row := 0; row < snap.Rows; row++ {
		y := r.Y + 1 + row
		for col := 0; col < snap.Cols; col++ {
			x := r.X + 1 + col*cellWidth
			cell := snap.CellAt(row, col)
			switch kind, ok := cell.Kind(); {
			case ok:
				scr.DrawTextColored(x, y, "██", kind.Color())
			case snap.GhostAt(row, col):
				scr.DrawTextColored(x, y, "░░", core.ColorGray)
			default:
				scr.DrawTextColored(x, y, " ·", core.ColorGray)
			}
		}
	}
}

func drawPanel(scr *core.Screen, r core.Rect, snap tetris.Snapshot) {
	scr.DrawBox(r, core.ColorGray)
	x := r.X + 2
	y := r.Y + 1

	scr.DrawTextCentered(r, y, "TETRIS", core.ColorBrightWhite)
	y += 2

	player := snap.PlayerName
	if player == "" {
		player = "-"
	}
	stats := []struct {
		label string
		value string
	}{
		{"Player", player},
		{"Score", humanize.Comma(int64(snap.Score))},
		{"Best", humanize.Comma(int64(snap.HighScore))},
		{"Lines", humanize.Comma(int64(snap.Lines))},
		{"Speed", fmt.Sprintf("%dms", snap.Interval.Milliseconds())},
	}
	for _, s := range stats {
		scr.DrawTextColored(x, y, s.label, core.ColorGray)
		scr.DrawText(x+7, y, s.value)
		y++
	}

	if snap.Phase != tetris.PhaseRunning && snap.Phase != tetris.PhasePaused {
		return
	}
	y++
	scr.DrawTextColored(x, y, "Next", core.ColorGray)
	y++
	drawShape(scr, x+2, y+1, snap.Next.Definition().Shape, snap.Next.Color())
}

func drawShape(scr *core.Screen, x, y int, shape tetris.Shape, c core.Color) {
	for i, row := range shape {
		for j, filled := range row {
			if filled {
				scr.DrawTextColored(x+j*cellWidth, y+i, "██", c)
			}
		}
	}
}

func drawOverlay(scr *core.Screen, board core.Rect, c core.Color, lines ...string) {
	box := board.Centered(board.W-2, len(lines)+2)
	scr.FillRect(box, ' ')
	scr.DrawBox(box, c)
	for i, line := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = c
		}
		scr.DrawTextCentered(box, box.Y+1+i, line, color)
	}
}

func drawStartPrompt(scr *core.Screen, board core.Rect, snap tetris.Snapshot, p prompt) {
	lines := []string{"NEW GAME", "", "Your name:", "> " + p.Name + "_", ""}
	switch {
	case p.Pending:
		lines = append(lines, "loading...")
	case p.Status != "":
		lines = append(lines, p.Status)
	default:
		lines = append(lines, "enter to play")
	}
	if snap.LastResult != nil {
		lines = append(lines, "", fmt.Sprintf("Last: %s %s", snap.LastResult.PlayerName, humanize.Comma(int64(snap.LastResult.Score))))
	}
	drawOverlay(scr, board, core.ColorCyan, lines...)
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestKeyMapMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, core.ActionMoveLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, core.ActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKey(tt.msg); got != tt.action {
			t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.action)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	if len(km.FullHelp()) != 2 {
		t.Errorf("FullHelp() has %d groups, expected 2", len(km.FullHelp()))
	}
}

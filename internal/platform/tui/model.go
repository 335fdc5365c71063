package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/session"
)

// Terminals report key repeats, not key presses and releases. A down key
// arriving within repeatDelay of the previous one is taken as auto-repeat
// and starts a held soft drop; a held drop is released once no down key
// arrived for repeatGap.
const (
	repeatDelay = 600 * time.Millisecond
	repeatGap   = 200 * time.Millisecond
)

// Controller is the part of a game session the model drives.
type Controller interface {
	Handle(in tetris.Input) error
	Start(name string) error
	Snapshot() tetris.Snapshot
	Pending() bool
	Updates() <-chan struct{}
}

var _ Controller = (*session.Session)(nil)

// Model is the Bubble Tea model for one game session.
type Model struct {
	session  Controller
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	name     textinput.Model
	status   string
	dropping bool
	lastDown time.Time
	quitting bool
	now      func() time.Time
}

// NewModel creates a model driving sess.
func NewModel(sess Controller, cfg core.RuntimeConfig, maxNameLength int) Model {
	cfg = cfg.Normalized()

	name := textinput.New()
	name.CharLimit = maxNameLength
	name.Prompt = ""
	name.SetValue(cfg.PlayerName)
	name.Focus()

	return Model{
		session: sess,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-1), // last row is the help line
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		name:    name,
		now:     time.Now,
	}
}

// Init starts the redraw loop and listens for session updates.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(m.config.TickRate),
		waitForUpdate(m.session.Updates()),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inPlay() {
			return m.handlePlayKey(msg)
		}
		return m.handlePromptKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.releaseSoftDrop(time.Time(msg))
		return m, tickCmd(m.config.TickRate)

	case updateMsg:
		return m, waitForUpdate(m.session.Updates())
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m Model) inPlay() bool {
	switch m.session.Snapshot().Phase {
	case tetris.PhaseRunning, tetris.PhasePaused:
		return true
	}
	return false
}

// handlePromptKey edits the player name between games.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "enter":
		m.status = ""
		if err := m.session.Start(m.name.Value()); err != nil {
			m.status = m.statusFor(err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handlePlayKey maps keys to session inputs while a game is on.
func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionMoveLeft:
		m.handle(tetris.InputMoveLeft)
	case core.ActionMoveRight:
		m.handle(tetris.InputMoveRight)
	case core.ActionRotate:
		m.handle(tetris.InputRotate)
	case core.ActionSoftDrop:
		m.softDrop()
	case core.ActionPause:
		// The session stops a held drop on pause
		m.dropping = false
		m.lastDown = time.Time{}
		m.handle(tetris.InputTogglePause)
	case core.ActionScreenshot:
		m.saveScreenshot()
	}
	return m, nil
}

func (m *Model) handle(kind tetris.InputKind) {
	//nolint:errcheck // Only ErrClosed is possible and the program is exiting then
	m.session.Handle(tetris.Input{Kind: kind})
}

// softDrop turns a lone down key into a single step and a repeated one
// into a held soft drop.
func (m *Model) softDrop() {
	now := m.now()
	repeated := !m.lastDown.IsZero() && now.Sub(m.lastDown) < repeatDelay
	m.lastDown = now

	switch {
	case m.dropping:
		// Each auto-repeat extends the hold
	case repeated:
		m.dropping = true
		m.handle(tetris.InputSoftDropStart)
	default:
		m.handle(tetris.InputSoftDropStart)
		m.handle(tetris.InputSoftDropStop)
	}
}

// releaseSoftDrop stops a held soft drop once no down key arrived for a while.
func (m *Model) releaseSoftDrop(now time.Time) {
	if m.dropping && now.Sub(m.lastDown) >= repeatGap {
		m.dropping = false
		m.handle(tetris.InputSoftDropStop)
	}
}

func (m Model) statusFor(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidName):
		return fmt.Sprintf("name: 1-%d chars", m.name.CharLimit)
	case errors.Is(err, session.ErrInProgress):
		return "please wait"
	default:
		return "cannot start"
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("tetris_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *Model) draw() {
	drawGame(m.screen, m.session.Snapshot(), prompt{
		Name:    m.name.Value(),
		Status:  m.status,
		Pending: m.session.Pending(),
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	helpLine := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + centerText(helpLine, m.config.ScreenW)
}

// Run starts the Bubble Tea program for sess and returns when the player quits.
func Run(sess Controller, cfg core.RuntimeConfig, maxNameLength int) error {
	p := tea.NewProgram(
		NewModel(sess, cfg, maxNameLength),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

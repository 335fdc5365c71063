// Package session runs one falling-block game: it serializes input and timer
// events through the engine's transition functions, drives gravity and soft
// drop as cancellable repeating tasks, and talks to the score store
// asynchronously.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// Session owns one board and one active piece. All methods are safe for
// concurrent use; every state transition runs to completion under one lock,
// so Snapshot never observes an intermediate step.
type Session struct {
	id     string
	rules  *tetris.Rules
	store  ScoreStore
	clock  Clock
	logger *log.Logger

	softDropInterval time.Duration
	fetchTimeout     time.Duration
	submitTimeout    time.Duration
	maxNameLength    int

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	updates chan struct{}

	mu       sync.Mutex
	state    tetris.State
	closed   bool
	pending  bool
	startGen uint64
	overGen  uint64

	gravity     Task
	gravityGen  uint64
	softDrop    Task
	softDropGen uint64
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the ticker clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSoftDropInterval sets how often a held soft drop steps the piece.
func WithSoftDropInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.softDropInterval = d
		}
	}
}

// WithTimeouts bounds the high score fetch and the score submit.
func WithTimeouts(fetch, submit time.Duration) Option {
	return func(s *Session) {
		if fetch > 0 {
			s.fetchTimeout = fetch
		}
		if submit > 0 {
			s.submitTimeout = submit
		}
	}
}

// WithMaxNameLength sets the longest accepted player name, in runes.
func WithMaxNameLength(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxNameLength = n
		}
	}
}

// WithConfig applies the input, player and persistence settings of cfg.
func WithConfig(cfg config.TetrisConfig) Option {
	return func(s *Session) {
		WithSoftDropInterval(cfg.Input.SoftDropInterval())(s)
		WithTimeouts(cfg.Persistence.FetchTimeout(), cfg.Persistence.SubmitTimeout())(s)
		WithMaxNameLength(cfg.Player.MaxNameLength)(s)
	}
}

// New creates a session awaiting a start command. store may be nil, in which
// case the high score is only tracked in memory.
func New(rules *tetris.Rules, store ScoreStore, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:               uuid.NewString(),
		rules:            rules,
		store:            store,
		clock:            TickerClock{},
		logger:           log.New(io.Discard),
		softDropInterval: 50 * time.Millisecond,
		fetchTimeout:     3 * time.Second,
		submitTimeout:    5 * time.Second,
		maxNameLength:    10,
		ctx:              ctx,
		cancel:           cancel,
		updates:          make(chan struct{}, 1),
		state:            rules.NewState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id[:8])
	return s
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Updates delivers a signal whenever the state changed outside a direct
// call, such as on a gravity tick or when an async call completes. Signals
// coalesce; readers should pull a fresh Snapshot.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// Snapshot returns an immutable copy of the current state.
func (s *Session) Snapshot() tetris.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Pending reports whether a start is waiting for the high score fetch.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Start begins a new game for playerName. The high score is fetched from
// the store first; until it arrives the session stays AwaitingStart and
// game input is ignored.
func (s *Session) Start(playerName string) error {
	name, err := ValidateName(playerName, s.maxNameLength)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.pending || s.state.Phase == tetris.PhaseRunning || s.state.Phase == tetris.PhasePaused {
		return ErrInProgress
	}

	if s.store == nil {
		s.begin(name, s.state.HighScore)
		return nil
	}

	s.pending = true
	s.startGen++
	gen := s.startGen
	s.wg.Add(1)
	go s.fetchHighScore(gen, name)
	return nil
}

// Handle applies one input event. Rejected moves are not errors; the only
// errors are ErrClosed and the Start errors for InputStart.
func (s *Session) Handle(in tetris.Input) error {
	if in.Kind == tetris.InputStart {
		return s.Start(in.PlayerName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	switch in.Kind {
	case tetris.InputSoftDropStart:
		if s.state.Phase != tetris.PhaseRunning || s.softDrop != nil {
			return nil
		}
		s.step()
		if s.state.Phase == tetris.PhaseRunning {
			s.startSoftDrop()
		}
	case tetris.InputSoftDropStop:
		s.stopSoftDrop()
	case tetris.InputTogglePause:
		s.state = s.rules.TogglePause(s.state)
		switch s.state.Phase {
		case tetris.PhasePaused:
			s.stopGravity()
			s.stopSoftDrop()
			s.logger.Debug("paused")
		case tetris.PhaseRunning:
			s.startGravity()
			s.logger.Debug("resumed")
		}
	default:
		var out tetris.Outcome
		s.state, out = s.rules.Apply(s.state, in)
		s.react(out)
	}
	return nil
}

// Close stops both timers, cancels any outstanding fetch or submit and waits
// for them to return. The session cannot be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopGravity()
	s.stopSoftDrop()
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Debug("closed")
}

// begin must be called with mu held.
func (s *Session) begin(name string, highScore int) {
	var out tetris.Outcome
	s.state, out = s.rules.Start(s.state, name, highScore)
	s.logger.Info("game started", "player", name, "high_score", highScore)
	if s.state.Phase == tetris.PhaseRunning {
		s.startGravity()
	}
	s.react(out)
}

// step moves the active piece down once and reacts to the outcome. It is
// the single entry point for gravity ticks and soft drop.
func (s *Session) step() {
	var out tetris.Outcome
	s.state, out = s.rules.StepDown(s.state)
	s.react(out)
}

func (s *Session) react(out tetris.Outcome) {
	if out.LinesCleared > 0 {
		s.logger.Debug("lines cleared", "lines", out.LinesCleared, "score", s.state.Score)
	}
	if out.GameOver {
		s.gameOver(out.Record)
		return
	}
	if out.SpeedChanged {
		s.logger.Debug("speed up", "interval", s.state.Speed.Interval)
		s.startGravity()
	}
}

func (s *Session) gameOver(rec *tetris.ScoreRecord) {
	s.stopGravity()
	s.stopSoftDrop()
	s.logger.Info("game over", "player", rec.PlayerName, "score", rec.Score, "lines", s.state.Lines)

	if s.store == nil {
		s.state = s.rules.Finish(s.state)
		return
	}
	s.overGen++
	gen := s.overGen
	s.wg.Add(1)
	go s.submit(gen, *rec)
}

func (s *Session) fetchHighScore(gen uint64, name string) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.fetchTimeout)
	defer cancel()

	high := 0
	top, err := s.store.FetchTopScores(ctx, 1)
	switch {
	case err != nil:
		s.logger.Warn("high score fetch failed", "error", err)
	case len(top) > 0:
		high = top[0].Score
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.startGen {
		return
	}
	s.pending = false
	s.begin(name, max(high, s.state.HighScore))
	s.notify()
}

func (s *Session) submit(gen uint64, rec tetris.ScoreRecord) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.submitTimeout)
	defer cancel()

	if err := s.store.SubmitScore(ctx, rec); err != nil {
		s.logger.Warn("score submit failed", "error", err, "score", rec.Score)
	} else {
		s.logger.Debug("score submitted", "score", rec.Score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.overGen || s.state.Phase != tetris.PhaseGameOver {
		return
	}
	s.state = s.rules.Finish(s.state)
	s.notify()
}

func (s *Session) startGravity() {
	s.stopGravity()
	s.gravityGen++
	gen := s.gravityGen
	s.gravity = s.clock.Every(s.state.Speed.Interval, func() { s.onTimer(gen, &s.gravityGen) })
}

func (s *Session) stopGravity() {
	if s.gravity != nil {
		s.gravity.Stop()
		s.gravity = nil
	}
	s.gravityGen++
}

func (s *Session) startSoftDrop() {
	s.stopSoftDrop()
	s.softDropGen++
	gen := s.softDropGen
	s.softDrop = s.clock.Every(s.softDropInterval, func() { s.onTimer(gen, &s.softDropGen) })
}

func (s *Session) stopSoftDrop() {
	if s.softDrop != nil {
		s.softDrop.Stop()
		s.softDrop = nil
	}
	s.softDropGen++
}

// onTimer runs a gravity or soft drop step unless the task that scheduled
// it has been replaced or stopped since.
func (s *Session) onTimer(gen uint64, current *uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != *current || s.state.Phase != tetris.PhaseRunning {
		return
	}
	s.step()
	s.notify()
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

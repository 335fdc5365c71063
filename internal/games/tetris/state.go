package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Phase is the lifecycle stage of a game.
type Phase int

const (
	PhaseAwaitingStart Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingStart:
		return "AwaitingStart"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// ScoreRecord is a finished game as handed to score persistence.
type ScoreRecord struct {
	PlayerName string
	Score      int
	Timestamp  time.Time
}

// State is the complete game state. Transitions on Rules take a State and
// return a new one; the input's Board is never modified.
type State struct {
	Phase      Phase
	Board      *Board
	Active     *Piece // nil outside Running and Paused
	Next       Kind
	PlayerName string
	Score      int
	HighScore  int
	Lines      int
	Speed      Speed
	LastResult *ScoreRecord
}

// Outcome reports what a transition did, for the session to react to.
type Outcome struct {
	Moved        bool
	Locked       bool
	LinesCleared int
	SpeedChanged bool
	GameOver     bool
	Record       *ScoreRecord
}

// Rules holds the tunables and the piece source for one game session.
type Rules struct {
	rows          int
	cols          int
	pointsPerLine int
	speed         SpeedRules
	kicks         []Kick
	pieces        Randomizer
	now           func() time.Time
}

// RulesOption configures Rules.
type RulesOption func(*Rules)

// WithNow overrides the timestamp source used for score records.
func WithNow(now func() time.Time) RulesOption {
	return func(r *Rules) { r.now = now }
}

// NewRules builds the rules from a validated config.
func NewRules(cfg config.TetrisConfig, pieces Randomizer, opts ...RulesOption) *Rules {
	kicks := make([]Kick, 0, len(cfg.Rotation.Kicks))
	for _, k := range cfg.Rotation.Kicks {
		kicks = append(kicks, Kick{DX: k.DX, DY: k.DY})
	}
	if len(kicks) == 0 {
		kicks = DefaultKicks
	}
	r := &Rules{
		rows:          cfg.Board.Rows,
		cols:          cfg.Board.Columns,
		pointsPerLine: cfg.Scoring.PointsPerLine,
		speed: SpeedRules{
			Enabled:       cfg.Speed.Enabled,
			Base:          cfg.Speed.BaseInterval(),
			Decrement:     cfg.Speed.Decrement(),
			Floor:         cfg.Speed.MinInterval(),
			Threshold:     cfg.Speed.Threshold,
			ThresholdStep: cfg.Speed.ThresholdStep,
		},
		kicks:  kicks,
		pieces: pieces,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rows returns the board height.
func (r *Rules) Rows() int { return r.rows }

// Cols returns the board width.
func (r *Rules) Cols() int { return r.cols }

// SpeedRules returns the gravity progression.
func (r *Rules) SpeedRules() SpeedRules { return r.speed }

// NewState returns an empty board awaiting a start command.
func (r *Rules) NewState() State {
	return State{
		Phase: PhaseAwaitingStart,
		Board: NewBoard(r.rows, r.cols),
		Speed: r.speed.Initial(),
	}
}

// Start begins a fresh game. It is accepted from AwaitingStart and GameOver
// and ignored otherwise.
func (r *Rules) Start(s State, playerName string, highScore int) (State, Outcome) {
	if s.Phase != PhaseAwaitingStart && s.Phase != PhaseGameOver {
		return s, Outcome{}
	}
	next := State{
		Phase:      PhaseRunning,
		Board:      NewBoard(r.rows, r.cols),
		Next:       r.pieces.Next(),
		PlayerName: playerName,
		HighScore:  highScore,
		Speed:      r.speed.Initial(),
		LastResult: s.LastResult,
	}
	var out Outcome
	if !r.spawn(&next) {
		out = r.gameOver(&next)
	}
	return next, out
}

// Move shifts the active piece dc columns. A blocked move leaves the state as is.
func (r *Rules) Move(s State, dc int) (State, Outcome) {
	if s.Phase != PhaseRunning || s.Active == nil {
		return s, Outcome{}
	}
	p := s.Active.Moved(0, dc)
	if Collides(s.Board, p) {
		return s, Outcome{}
	}
	s.Active = &p
	return s, Outcome{Moved: true}
}

// Rotate turns the active piece clockwise using the configured kicks.
func (r *Rules) Rotate(s State) (State, Outcome) {
	if s.Phase != PhaseRunning || s.Active == nil {
		return s, Outcome{}
	}
	p, ok := RotateWithKicks(s.Board, *s.Active, r.kicks)
	if !ok {
		return s, Outcome{}
	}
	s.Active = &p
	return s, Outcome{Moved: true}
}

// StepDown moves the active piece one row down. When it cannot move it is
// locked into the board, full rows are cleared and scored, the speed is
// advanced and the next piece spawns. Gravity ticks and soft drop both
// land here.
func (r *Rules) StepDown(s State) (State, Outcome) {
	if s.Phase != PhaseRunning || s.Active == nil {
		return s, Outcome{}
	}
	p := s.Active.Moved(1, 0)
	if !Collides(s.Board, p) {
		s.Active = &p
		return s, Outcome{Moved: true}
	}

	board := s.Board.Clone()
	board.Place(*s.Active)
	cleared := board.ClearFullRows()
	s.Board = board

	out := Outcome{Locked: true, LinesCleared: cleared}
	if cleared > 0 {
		s.Score += LineScore(cleared, r.pointsPerLine)
		s.Lines += cleared
		sp := r.speed.Advance(s.Speed, s.Score)
		out.SpeedChanged = sp.Interval != s.Speed.Interval
		s.Speed = sp
	}

	if !r.spawn(&s) {
		over := r.gameOver(&s)
		over.Locked = out.Locked
		over.LinesCleared = out.LinesCleared
		over.SpeedChanged = out.SpeedChanged
		return s, over
	}
	return s, out
}

// TogglePause flips between Running and Paused.
func (r *Rules) TogglePause(s State) State {
	switch s.Phase {
	case PhaseRunning:
		s.Phase = PhasePaused
	case PhasePaused:
		s.Phase = PhaseRunning
	}
	return s
}

// Finish leaves GameOver for AwaitingStart, keeping the high score, the
// player name and the last result.
func (r *Rules) Finish(s State) State {
	if s.Phase != PhaseGameOver {
		return s
	}
	s.Phase = PhaseAwaitingStart
	s.Board = NewBoard(r.rows, r.cols)
	s.Active = nil
	s.Score = 0
	s.Lines = 0
	s.Speed = r.speed.Initial()
	return s
}

// Apply dispatches a discrete input. SoftDropStart performs one immediate
// step; repetition and SoftDropStop are the session's concern.
func (r *Rules) Apply(s State, in Input) (State, Outcome) {
	switch in.Kind {
	case InputMoveLeft:
		return r.Move(s, -1)
	case InputMoveRight:
		return r.Move(s, 1)
	case InputRotate:
		return r.Rotate(s)
	case InputSoftDropStart:
		return r.StepDown(s)
	case InputTogglePause:
		return r.TogglePause(s), Outcome{}
	case InputStart:
		return r.Start(s, in.PlayerName, s.HighScore)
	default:
		return s, Outcome{}
	}
}

// spawn promotes Next to the active piece and draws a new Next. It reports
// false when the spawned piece collides.
func (r *Rules) spawn(s *State) bool {
	p := SpawnPiece(s.Next, r.cols)
	s.Next = r.pieces.Next()
	if Collides(s.Board, p) {
		s.Active = nil
		return false
	}
	s.Active = &p
	return true
}

func (r *Rules) gameOver(s *State) Outcome {
	rec := &ScoreRecord{PlayerName: s.PlayerName, Score: s.Score, Timestamp: r.now()}
	s.Phase = PhaseGameOver
	s.Active = nil
	s.LastResult = rec
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	return Outcome{GameOver: true, Record: rec}
}

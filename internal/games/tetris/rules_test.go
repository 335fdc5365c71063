package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRules(kinds ...Kind) *Rules {
	return NewRules(config.DefaultTetrisConfig(), NewSequence(kinds...), WithNow(func() time.Time { return fixedNow }))
}

func emptyRows(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = ".........."
	}
	return rows
}

func TestNewStateAwaitsStart(t *testing.T) {
	r := newTestRules(KindI)
	s := r.NewState()
	assert.Equal(t, PhaseAwaitingStart, s.Phase)
	assert.Nil(t, s.Active)
	assert.Equal(t, time.Second, s.Speed.Interval)

	moved, out := r.Move(s, 1)
	assert.Equal(t, s, moved)
	assert.False(t, out.Moved)
}

func TestStartSpawnsFirstPiece(t *testing.T) {
	r := newTestRules(KindI, KindO)
	s, out := r.Start(r.NewState(), "ada", 120)

	assert.False(t, out.GameOver)
	assert.Equal(t, PhaseRunning, s.Phase)
	require.NotNil(t, s.Active)
	assert.Equal(t, KindI, s.Active.Kind)
	assert.Equal(t, 0, s.Active.Row)
	assert.Equal(t, 3, s.Active.Col)
	assert.Equal(t, KindO, s.Next)
	assert.Equal(t, "ada", s.PlayerName)
	assert.Equal(t, 120, s.HighScore)
	assert.Zero(t, s.Score)

	again, _ := r.Start(s, "bob", 0)
	assert.Equal(t, "ada", again.PlayerName, "start is ignored while running")
}

func TestIPieceFallsToFloorAndLocks(t *testing.T) {
	r := newTestRules(KindI, KindO)
	s, _ := r.Start(r.NewState(), "ada", 0)

	for i := 0; i < 17; i++ {
		var out Outcome
		s, out = r.StepDown(s)
		require.True(t, out.Moved, "step %d", i)
	}
	assert.Equal(t, 17, s.Active.Row)

	s, out := r.StepDown(s)
	assert.True(t, out.Locked)
	assert.Zero(t, out.LinesCleared)
	assert.Equal(t, "...IIII...", s.Board.String()[18*11-11:18*11-1])
	require.NotNil(t, s.Active)
	assert.Equal(t, KindO, s.Active.Kind)
	assert.Equal(t, -1, s.Active.Row)
	assert.Equal(t, 4, s.Active.Col)
	assert.Equal(t, KindI, s.Next)
}

func TestCompletingBottomRowClearsAndScores(t *testing.T) {
	r := newTestRules(KindI, KindO)
	s, _ := r.Start(r.NewState(), "ada", 0)

	board, err := ParseBoard(append(emptyRows(17), "ZZZ....ZZZ")...)
	require.NoError(t, err)
	s.Board = board

	var out Outcome
	for !out.Locked {
		s, out = r.StepDown(s)
	}
	assert.Equal(t, 1, out.LinesCleared)
	assert.Equal(t, 10, s.Score)
	assert.Equal(t, 1, s.Lines)
	assert.True(t, s.Board.Equal(NewBoard(18, 10)))
}

func TestLockDoesNotTouchPreviousBoard(t *testing.T) {
	r := newTestRules(KindO)
	s, _ := r.Start(r.NewState(), "ada", 0)
	for i := 0; i < 17; i++ {
		s, _ = r.StepDown(s)
	}
	before := s
	after, out := r.StepDown(before)
	require.True(t, out.Locked)
	assert.True(t, before.Board.Equal(NewBoard(18, 10)))
	assert.False(t, after.Board.Equal(before.Board))
}

func TestMoveBlockedByWall(t *testing.T) {
	r := newTestRules(KindI)
	s, _ := r.Start(r.NewState(), "ada", 0)

	for i := 0; i < 3; i++ {
		var out Outcome
		s, out = r.Move(s, -1)
		require.True(t, out.Moved)
	}
	assert.Equal(t, 0, s.Active.Col)

	blocked, out := r.Move(s, -1)
	assert.False(t, out.Moved)
	assert.Equal(t, s, blocked)
}

func TestRotateUsesKicks(t *testing.T) {
	b := NewBoard(18, 10)
	vertical := Piece{Kind: KindI, Shape: KindI.Definition().Shape.Rotate(), Row: 5, Col: 8}

	p, ok := RotateWithKicks(b, vertical, DefaultKicks)
	require.True(t, ok)
	assert.Equal(t, 6, p.Col)
	assert.Equal(t, 5, p.Row)
	assert.Equal(t, 1, p.Shape.Rows())

	atEdge := vertical.Moved(0, 1)
	same, ok := RotateWithKicks(b, atEdge, DefaultKicks)
	assert.False(t, ok)
	assert.Equal(t, atEdge, same)
}

func TestRotateFailsWhenEnclosed(t *testing.T) {
	b, err := ParseBoard(append(emptyRows(14), "ZZZ.ZZZZZZ", "ZZZ.ZZZZZZ", "ZZZ.ZZZZZZ", "ZZZ.ZZZZZZ")...)
	require.NoError(t, err)
	vertical := Piece{Kind: KindI, Shape: KindI.Definition().Shape.Rotate(), Row: 14, Col: 3}
	require.False(t, Collides(b, vertical))

	_, ok := RotateWithKicks(b, vertical, DefaultKicks)
	assert.False(t, ok)
}

func TestPauseFreezesPlay(t *testing.T) {
	r := newTestRules(KindT)
	s, _ := r.Start(r.NewState(), "ada", 0)

	paused := r.TogglePause(s)
	assert.Equal(t, PhasePaused, paused.Phase)

	for _, in := range []InputKind{InputMoveLeft, InputMoveRight, InputRotate, InputSoftDropStart} {
		next, out := r.Apply(paused, Input{Kind: in})
		assert.Equal(t, paused, next, in.String())
		assert.Equal(t, Outcome{}, out)
	}
	next, _ := r.StepDown(paused)
	assert.Equal(t, paused, next)

	resumed := r.TogglePause(paused)
	assert.Equal(t, PhaseRunning, resumed.Phase)
	assert.Equal(t, s.Active, resumed.Active)
}

func TestTogglePauseIgnoredOutsidePlay(t *testing.T) {
	r := newTestRules(KindT)
	s := r.NewState()
	assert.Equal(t, s, r.TogglePause(s))
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	r := newTestRules(KindI, KindO)
	s, _ := r.Start(r.NewState(), "ada", 20)

	board, err := ParseBoard(append([]string{"..........", "....Z....."}, emptyRows(16)...)...)
	require.NoError(t, err)
	s.Board = board
	s.Score = 50

	s, out := r.StepDown(s)
	assert.True(t, out.Locked)
	assert.True(t, out.GameOver)
	require.NotNil(t, out.Record)
	assert.Equal(t, ScoreRecord{PlayerName: "ada", Score: 50, Timestamp: fixedNow}, *out.Record)
	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.Nil(t, s.Active)
	assert.Equal(t, 50, s.HighScore)
	assert.Equal(t, out.Record, s.LastResult)

	stepped, out := r.StepDown(s)
	assert.Equal(t, s, stepped)
	assert.False(t, out.GameOver)

	idle := r.Finish(s)
	assert.Equal(t, PhaseAwaitingStart, idle.Phase)
	assert.Equal(t, 50, idle.HighScore)
	assert.Equal(t, "ada", idle.PlayerName)
	assert.Zero(t, idle.Score)
	require.NotNil(t, idle.LastResult)
	assert.Equal(t, 50, idle.LastResult.Score)

	restarted, _ := r.Apply(idle, Start("bob"))
	assert.Equal(t, PhaseRunning, restarted.Phase)
	assert.Equal(t, 50, restarted.HighScore)
	assert.Zero(t, restarted.Score)
}

func TestHighScoreKeptWhenNotBeaten(t *testing.T) {
	r := newTestRules(KindI, KindO)
	s, _ := r.Start(r.NewState(), "ada", 500)
	board, err := ParseBoard(append([]string{"..........", "....Z....."}, emptyRows(16)...)...)
	require.NoError(t, err)
	s.Board = board

	s, out := r.StepDown(s)
	require.True(t, out.GameOver)
	assert.Equal(t, 500, s.HighScore)
}

func TestSpeedStepFunction(t *testing.T) {
	rules := SpeedRules{
		Enabled:       true,
		Base:          time.Second,
		Decrement:     100 * time.Millisecond,
		Floor:         100 * time.Millisecond,
		Threshold:     200,
		ThresholdStep: 200,
	}
	sp := rules.Initial()
	assert.Equal(t, time.Second, sp.Interval)

	sp = rules.Advance(sp, 190)
	assert.Equal(t, time.Second, sp.Interval)

	sp = rules.Advance(sp, 200)
	assert.Equal(t, 900*time.Millisecond, sp.Interval)
	assert.Equal(t, 400, sp.Threshold)

	sp = rules.Advance(sp, 830)
	assert.Equal(t, 600*time.Millisecond, sp.Interval)
	assert.Equal(t, 1000, sp.Threshold)

	prev := sp.Interval
	for score := 1000; score <= 10000; score += 10 {
		sp = rules.Advance(sp, score)
		assert.LessOrEqual(t, sp.Interval, prev)
		assert.GreaterOrEqual(t, sp.Interval, rules.Floor)
		prev = sp.Interval
	}
	assert.Equal(t, 100*time.Millisecond, sp.Interval)

	rules.Enabled = false
	fixed := rules.Advance(rules.Initial(), 5000)
	assert.Equal(t, time.Second, fixed.Interval)
}

func TestLineScore(t *testing.T) {
	for n := 0; n <= 4; n++ {
		assert.Equal(t, 10*n, LineScore(n, 10))
	}
}

func TestSpeedChangeReportedOnLock(t *testing.T) {
	r := newTestRules(KindI, KindO)
	s, _ := r.Start(r.NewState(), "ada", 0)
	board, err := ParseBoard(append(emptyRows(17), "ZZZ....ZZZ")...)
	require.NoError(t, err)
	s.Board = board
	s.Score = 190

	var out Outcome
	for !out.Locked {
		s, out = r.StepDown(s)
	}
	assert.True(t, out.SpeedChanged)
	assert.Equal(t, 200, s.Score)
	assert.Equal(t, 900*time.Millisecond, s.Speed.Interval)
}

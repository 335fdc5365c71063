package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// ScoreStore is the score persistence collaborator. Implementations may be
// slow or fail; the session calls them off its lock with a timeout and
// treats every failure as non-fatal.
type ScoreStore interface {
	// SubmitScore persists a finished game.
	SubmitScore(ctx context.Context, rec tetris.ScoreRecord) error

	// FetchTopScores returns up to limit records ordered by score descending.
	FetchTopScores(ctx context.Context, limit int) ([]tetris.ScoreRecord, error)
}

var (
	// ErrInvalidName is returned for an empty or too long player name.
	ErrInvalidName = errors.New("session: invalid player name")
	// ErrClosed is returned by a session after Close.
	ErrClosed = errors.New("session: closed")
	// ErrInProgress is returned by Start while a game is running or a start is pending.
	ErrInProgress = errors.New("session: game in progress")
)

// ValidateName trims name and checks it is non-empty and at most maxLen runes.
func ValidateName(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if maxLen > 0 && utf8.RuneCountInString(name) > maxLen {
		return "", fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidName, name, maxLen)
	}
	return name, nil
}

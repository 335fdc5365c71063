// Package scoreapi serves the score store over HTTP and provides a client
// that lets a game session use a remote score service.
package scoreapi

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Score is the wire form of a stored game result.
type Score struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateScoreRequest is the body of POST /api/scores. A zero CreatedAt
// means the time the server receives it.
type CreateScoreRequest struct {
	PlayerName string    `json:"playerName" binding:"required"`
	Score      *int      `json:"score" binding:"required"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Stats is the body of GET /api/stats.
type Stats struct {
	Games      int       `json:"games"`
	Players    int       `json:"players"`
	HighScore  int       `json:"highScore"`
	AvgScore   float64   `json:"avgScore"`
	LastPlayed time.Time `json:"lastPlayed"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

func fromEntry(e storage.ScoreEntry) Score {
	return Score{ID: e.ID, PlayerName: e.PlayerName, Score: e.Score, CreatedAt: e.CreatedAt}
}

func (s Score) record() tetris.ScoreRecord {
	return tetris.ScoreRecord{PlayerName: s.PlayerName, Score: s.Score, Timestamp: s.CreatedAt}
}

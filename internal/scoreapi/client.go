package scoreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/session"
)

// Client talks to a Server. It implements session.ScoreStore.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL, e.g. "http://localhost:8080".
// A nil httpClient uses one with a 10 second timeout; callers usually bound
// each call with a context deadline as well.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Ensure Client implements ScoreStore
var _ session.ScoreStore = (*Client)(nil)

// SubmitScore posts a finished game.
func (c *Client) SubmitScore(ctx context.Context, rec tetris.ScoreRecord) error {
	score := rec.Score
	body, err := json.Marshal(CreateScoreRequest{
		PlayerName: rec.PlayerName,
		Score:      &score,
		CreatedAt:  rec.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("scoreapi: encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scores", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("scoreapi: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created Score
	return c.do(req, http.StatusCreated, &created)
}

// FetchTopScores lists up to limit scores, highest first.
func (c *Client) FetchTopScores(ctx context.Context, limit int) ([]tetris.ScoreRecord, error) {
	scores, err := c.TopScores(ctx, limit)
	if err != nil {
		return nil, err
	}
	records := make([]tetris.ScoreRecord, len(scores))
	for i, s := range scores {
		records[i] = s.record()
	}
	return records, nil
}

// TopScores lists up to limit scores in wire form.
func (c *Client) TopScores(ctx context.Context, limit int) ([]Score, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u := c.baseURL + "/api/scores"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("scoreapi: %w", err)
	}

	var scores []Score
	if err := c.do(req, http.StatusOK, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scoreapi: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var apiErr ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("scoreapi: %s %s: %s: %s", req.Method, req.URL.Path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("scoreapi: %s %s: %s", req.Method, req.URL.Path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("scoreapi: decode response: %w", err)
	}
	return nil
}

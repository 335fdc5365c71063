package scoreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewServer(store, log.New(io.Discard), 10), store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateAndGetScore(t *testing.T) {
	srv, _ := newTestServer(t)
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/scores",
		map[string]any{"playerName": " ada ", "score": 40, "createdAt": at})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "ada", created.PlayerName)
	assert.Equal(t, 40, created.Score)
	assert.True(t, created.CreatedAt.Equal(at))
	assert.NotZero(t, created.ID)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/scores/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestCreateScoreValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body any
	}{
		{"missing name", map[string]any{"score": 10}},
		{"blank name", map[string]any{"playerName": "   ", "score": 10}},
		{"long name", map[string]any{"playerName": "abcdefghijk", "score": 10}},
		{"missing score", map[string]any{"playerName": "ada"}},
		{"negative score", map[string]any{"playerName": "ada", "score": -5}},
		{"not json", "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/scores", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var apiErr ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.NotEmpty(t, apiErr.Error)
		})
	}

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/scores", map[string]any{"playerName": "ada", "score": 0})
	assert.Equal(t, http.StatusCreated, rec.Code, "zero is a valid score")
}

func TestListScores(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	for i, score := range []int{30, 90, 60} {
		_, err := store.SaveScore(ctx, "p"+itoa(int64(i)), score, time.Time{})
		require.NoError(t, err)
	}

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/scores?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var scores []Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scores))
	require.Len(t, scores, 2)
	assert.Equal(t, 90, scores[0].Score)
	assert.Equal(t, 60, scores[1].Score)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/scores?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListScoresEmptyIsArray(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/scores", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDeleteScore(t *testing.T) {
	srv, store := newTestServer(t)
	id, err := store.SaveScore(context.Background(), "ada", 70, time.Time{})
	require.NoError(t, err)

	rec := doJSON(t, srv.Handler(), http.MethodDelete, "/api/scores/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleted))
	assert.Equal(t, 70, deleted.Score)

	rec = doJSON(t, srv.Handler(), http.MethodDelete, "/api/scores/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/scores/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/scores/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	store.SaveScore(ctx, "ada", 10, time.Time{})
	store.SaveScore(ctx, "bob", 30, time.Time{})

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 2, st.Games)
	assert.Equal(t, 2, st.Players)
	assert.Equal(t, 30, st.HighScore)
	assert.InDelta(t, 20.0, st.AvgScore, 0.001)
}

func TestClientRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := NewClient(ts.URL+"/", nil)
	ctx := context.Background()
	at := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, client.SubmitScore(ctx, tetris.ScoreRecord{PlayerName: "ada", Score: 50, Timestamp: at}))
	require.NoError(t, client.SubmitScore(ctx, tetris.ScoreRecord{PlayerName: "bob", Score: 80, Timestamp: at}))

	top, err := client.FetchTopScores(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "bob", top[0].PlayerName)
	assert.Equal(t, 80, top[0].Score)
	assert.True(t, top[0].Timestamp.Equal(at))
}

func TestClientReportsServerErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := NewClient(ts.URL, nil)
	err := client.SubmitScore(context.Background(), tetris.ScoreRecord{PlayerName: "", Score: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClientHonoursContext(t *testing.T) {
	blocked := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer ts.Close()
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewClient(ts.URL, nil).FetchTopScores(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

package scoreapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-tetris/internal/session"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Repository is the subset of storage.Store the server needs.
type Repository interface {
	SaveScore(ctx context.Context, playerName string, score int, createdAt time.Time) (int64, error)
	TopScores(ctx context.Context, limit int) ([]storage.ScoreEntry, error)
	ScoreByID(ctx context.Context, id int64) (*storage.ScoreEntry, error)
	DeleteScore(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*storage.Stats, error)
}

// Server exposes a Repository as a JSON REST API.
type Server struct {
	repo          Repository
	logger        *log.Logger
	maxNameLength int
	engine        *gin.Engine
}

// NewServer builds the router. maxNameLength bounds accepted player names.
func NewServer(repo Repository, logger *log.Logger, maxNameLength int) *Server {
	s := &Server{
		repo:          repo,
		logger:        logger,
		maxNameLength: maxNameLength,
		engine:        gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.logRequests())

	s.engine.GET("/healthz", s.health)
	api := s.engine.Group("/api")
	api.POST("/scores", s.createScore)
	api.GET("/scores", s.listScores)
	api.GET("/scores/:id", s.getScore)
	api.DELETE("/scores/:id", s.deleteScore)
	api.GET("/stats", s.stats)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting score API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("scoreapi: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Stopping score API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("scoreapi: shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) createScore(c *gin.Context) {
	var req CreateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "invalid body: %v", err)
		return
	}
	name, err := session.ValidateName(req.PlayerName, s.maxNameLength)
	if err != nil {
		abort(c, http.StatusBadRequest, "%v", err)
		return
	}
	if *req.Score < 0 {
		abort(c, http.StatusBadRequest, "score must not be negative")
		return
	}

	ctx := c.Request.Context()
	id, err := s.repo.SaveScore(ctx, name, *req.Score, req.CreatedAt)
	if err != nil {
		s.internalError(c, err)
		return
	}
	entry, err := s.repo.ScoreByID(ctx, id)
	if err != nil {
		s.internalError(c, err)
		return
	}
	s.logger.Info("score saved", "id", id, "player", name, "score", *req.Score)
	c.JSON(http.StatusCreated, fromEntry(*entry))
}

func (s *Server) listScores(c *gin.Context) {
	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			abort(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := s.repo.TopScores(c.Request.Context(), limit)
	if err != nil {
		s.internalError(c, err)
		return
	}
	scores := make([]Score, 0, len(entries))
	for _, e := range entries {
		scores = append(scores, fromEntry(e))
	}
	c.JSON(http.StatusOK, scores)
}

func (s *Server) getScore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entry, err := s.repo.ScoreByID(c.Request.Context(), id)
	if err != nil {
		s.repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromEntry(*entry))
}

// deleteScore responds with the removed record.
func (s *Server) deleteScore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	entry, err := s.repo.ScoreByID(ctx, id)
	if err != nil {
		s.repoError(c, err)
		return
	}
	if err := s.repo.DeleteScore(ctx, id); err != nil {
		s.repoError(c, err)
		return
	}
	s.logger.Info("score deleted", "id", id)
	c.JSON(http.StatusOK, fromEntry(*entry))
}

func (s *Server) stats(c *gin.Context) {
	st, err := s.repo.Stats(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, Stats{
		Games:      st.GamesCount,
		Players:    st.Players,
		HighScore:  st.HighScore,
		AvgScore:   st.AvgScore,
		LastPlayed: st.LastPlayed,
	})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		abort(c, http.StatusBadRequest, "invalid score id %q", c.Param("id"))
		return 0, false
	}
	return id, true
}

func (s *Server) repoError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		abort(c, http.StatusNotFound, "score not found")
		return
	}
	s.internalError(c, err)
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	abort(c, http.StatusInternalServerError, "internal error")
}

func abort(c *gin.Context, status int, format string, args ...any) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/scoreapi"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagAPIAddr string

var serveAPICmd = &cobra.Command{
	Use:   "serve-api",
	Short: "Start the HTTP score service",
	Long: `Start the REST score service backed by the scores database.

Endpoints:
  GET    /healthz
  POST   /api/scores          {"playerName": "ada", "score": 120}
  GET    /api/scores?limit=N  top scores, best first
  GET    /api/scores/:id
  DELETE /api/scores/:id
  GET    /api/stats

Games started with 'tetris play --scores-url http://host:port' fetch the
high score from and submit their results to this service.

Examples:
  tetris serve-api
  tetris serve-api --addr :9090 --db ./scores.db
  tetris serve-api --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runServeAPI,
}

func init() {
	serveAPICmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
	serveAPICmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML (player name rules)")
}

func runServeAPI(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "tetris-api")
	if err != nil {
		return err
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return scoreapi.NewServer(store, logger, gameCfg.Player.MaxNameLength).ListenAndServe(ctx, flagAPIAddr)
}

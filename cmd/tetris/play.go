package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/scoreapi"
	"github.com/vovakirdan/tui-tetris/internal/session"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagScoresURL  string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in this terminal.

Controls:
  Left/Right, A/D  - Move
  Up, W            - Rotate
  Down, S (hold)   - Soft drop
  P/Space          - Pause
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow start (1300ms), speeds up with score
  normal - Default start (1000ms), speeds up with score
  hard   - Fast start (600ms), speeds up with score
  fixed  - No speed up, stays at the config's base interval

Scores are kept in the local database unless --scores-url points at a
score service started with 'tetris serve-api'.

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --name ada --seed 42
  tetris play --config ./my-tetris.yaml
  tetris play --scores-url http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagScoresURL, "scores-url", "", "Score service base URL (default: local database)")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name to pre-fill (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file
	dir, err := tetrisDir()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(dir, "tetris.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "tetris")
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var store session.ScoreStore
	if flagScoresURL != "" {
		store = scoreapi.NewClient(flagScoresURL, nil)
	} else {
		db, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", openErr)
			logger.Warn("playing without score storage", "error", openErr)
			// Continue without storage - game still works
		} else {
			defer db.Close()
			store = db
		}
	}

	seed := gameSeed()
	pieces, err := tetris.NewRandomizer(gameCfg.Pieces.Randomizer, seed)
	if err != nil {
		return err
	}

	sess := session.New(
		tetris.NewRules(gameCfg, pieces),
		store,
		session.WithConfig(gameCfg),
		session.WithLogger(logger),
	)
	defer sess.Close()
	logger.Info("session created", "id", sess.ID(), "seed", seed)

	name := flagName
	if name == "" {
		name = tui.PlayerNameFor(os.Getenv("USER"), gameCfg.Player.MaxNameLength)
	}

	cfg := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       seed,
		PlayerName: name,
	}

	if err := tui.Run(sess, cfg, gameCfg.Player.MaxNameLength); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadGameConfig loads --config and applies --difficulty.
func loadGameConfig() (config.TetrisConfig, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, err
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, err
	}

	config.ApplyTetrisPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.TetrisConfig{}, err
	}
	return cfg, nil
}

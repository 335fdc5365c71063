package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagPlain  bool
	flagLimit  int
	flagPlayer string
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the high score table.

When attached to a terminal an interactive table is shown; otherwise, or
with --plain, the top scores are printed.

Examples:
  tetris scores
  tetris scores --plain --limit 20
  tetris scores --player ada
  tetris scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores instead of the interactive table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to print")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only print scores of this player")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagClear {
		if err := store.ClearScores(ctx); err != nil {
			return err
		}
		fmt.Println("All scores deleted.")
		return nil
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if interactive && !flagPlain && flagPlayer == "" {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	var scores []storage.ScoreEntry
	if flagPlayer != "" {
		scores, err = store.PlayerScores(ctx, flagPlayer, flagLimit)
	} else {
		scores, err = store.TopScores(ctx, flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	printScores(scores)

	if stats, statsErr := store.Stats(ctx); statsErr == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %s  Games: %s  Players: %d\n",
			color.GreenString(humanize.Comma(int64(stats.HighScore))),
			humanize.Comma(int64(stats.GamesCount)),
			stats.Players,
		)
	}
	return nil
}

// printScores prints a ranked listing. fatih/color drops the colors when
// stdout is not a terminal.
func printScores(scores []storage.ScoreEntry) {
	title := color.New(color.FgCyan, color.Bold)
	title.Println("High Scores - Tetris")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
		return
	}

	header := color.New(color.Faint)
	header.Printf("  %-4s  %-10s  %10s  %s\n", "Rank", "Player", "Score", "When")
	header.Printf("  %-4s  %-10s  %10s  %s\n", "----", "------", "-----", "----")

	gold := color.New(color.FgYellow, color.Bold)
	for i, entry := range scores {
		line := fmt.Sprintf("  %-4d  %-10s  %10s  %s\n",
			i+1,
			entry.PlayerName,
			humanize.Comma(int64(entry.Score)),
			humanize.Time(entry.CreatedAt),
		)
		if i == 0 {
			gold.Print(line)
			continue
		}
		fmt.Print(line)
	}
}

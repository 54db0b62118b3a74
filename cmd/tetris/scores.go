package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit int
	flagAll   bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores with the level and rows reached.

Examples:
  tetris scores
  tetris scores --limit 25
  tetris scores --all
  tetris scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show every recorded score")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(tetris.GameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "db", flagDBPath)
		fmt.Fprintln(out, "Scores cleared.")
		return nil
	}

	var scores []storage.ScoreEntry
	if flagAll {
		scores, err = store.AllScores(tetris.GameID)
	} else {
		scores, err = store.TopScores(tetris.GameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "High Scores - Tetris")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'tetris play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-5s  %s\n", "Rank", "Score", "Level", "Rows", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-5s  %s\n", "----", "-----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %-5d  %-5d  %s\n",
			i+1, e.Score, e.Level, e.Rows, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(tetris.GameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Games: %d  Best: %d  Top level: %d  Rows: %d\n",
			stats.GamesPlayed, stats.HighScore, stats.BestLevel, stats.TotalRows)
	}
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

// runMenu loops between the start menu, games and the scoreboard until the
// player quits.
func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var (
		scores tui.HighScorer
		source tui.ScoreSource
	)
	if store != nil {
		scores, source = store, store
	}

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(scores, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(source, tetris.GameID, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			if err := play(store, result.Difficulty, cfg); err != nil {
				return err
			}
		}
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing immediately.

Controls:
  Left/Right, h/l, a/d   - Move
  Down, j, s             - Soft drop
  Up, k, w, Space        - Rotate clockwise
  P/Esc                  - Pause
  R                      - Restart (after game over)
  N                      - New game
  ?                      - Toggle help
  Q/Ctrl+C               - Quit

Difficulty options (starting gravity interval):
  easy   - 1000 ms
  normal - 800 ms
  hard   - 500 ms

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return play(store, preset, runtimeConfig())
}

// play loads and validates the configuration, then runs one game session.
// Configuration problems are reported before the terminal is taken over.
func play(store *storage.Store, preset config.DifficultyPreset, cfg core.RuntimeConfig) error {
	gameCfg, err := loadConfig(preset)
	if err != nil {
		return err
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(string(preset))

	game, err := registry.Create(tetris.GameID)
	if err != nil {
		return err
	}

	logger.Info("starting", "difficulty", preset, "speed_ms", gameCfg.Gravity.InitialSpeedMs,
		"board", fmt.Sprintf("%dx%d", gameCfg.Board.Width, gameCfg.Board.Height))
	return tui.Run(game, store, logger.Logger, cfg)
}

func loadConfig(preset config.DifficultyPreset) (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, err
	}
	config.ApplyTetrisPreset(&cfg, preset)
	return cfg, nil
}

// openStore opens the score database. Play continues without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

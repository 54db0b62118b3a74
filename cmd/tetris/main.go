// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris                   - Start menu (pick a difficulty, view scores)
//	tetris play              - Play immediately
//	tetris scores            - Show high scores
//	tetris list              - List available games
//	tetris config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible piece order
//	--db <path>         - Set database path (default: ~/.tetris/scores.db)
//	--log-file <path>   - Write logs to a rotating file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string

	logger = logging.Discard()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris for the terminal. Run without a command to open the start menu.

Available commands:
  play     - Play immediately
  scores   - View high scores
  list     - Show all available games
  config   - Print the effective configuration

Examples:
  tetris
  tetris play --difficulty hard
  tetris play --seed 42 --log-file ~/.tetris/tetris.log
  tetris scores --limit 20`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
	RunE:               runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	l, err := logging.New(logging.Options{Level: flagLogLevel, File: flagLogFile})
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func closeLogging(_ *cobra.Command, _ []string) error {
	return logger.Close()
}

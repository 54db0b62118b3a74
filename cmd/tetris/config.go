package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Load the configuration the same way 'play' does and print it as YAML.

Search order: --config, ~/.tetris/configs/tetris.yaml,
./configs/tetris.yaml, then the built-in defaults.

Examples:
  tetris config
  tetris config --difficulty hard
  tetris config > ~/.tetris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(preset)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

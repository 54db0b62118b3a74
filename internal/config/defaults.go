package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the hardcoded default configuration.
// It mirrors defaults/tetris.yaml and is used when the embed cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:     10,
			Height:    22,
			SpawnRows: 2,
		},
		Gravity: GravityConfig{
			InitialSpeedMs: 800,
			MinSpeedMs:     50,
			DecayDivisor:   6,
		},
		Scoring: ScoringConfig{
			RowsPerLevel: 10,
			Rewards: map[int]int{
				1: 40,
				2: 100,
				3: 300,
				4: 1200,
			},
		},
		StartLevel: 1,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}

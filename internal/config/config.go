// Package config provides YAML-based engine configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains every tunable constant of the engine.
type TetrisConfig struct {
	Board      BoardConfig   `yaml:"board"`
	Gravity    GravityConfig `yaml:"gravity"`
	Scoring    ScoringConfig `yaml:"scoring"`
	StartLevel int           `yaml:"start_level"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`     // Includes the hidden spawn rows
	SpawnRows int `yaml:"spawn_rows"` // Hidden rows above the visible field
}

// GravityConfig defines the forced-drop interval and its decay.
type GravityConfig struct {
	InitialSpeedMs int `yaml:"initial_speed_ms"`
	MinSpeedMs     int `yaml:"min_speed_ms"`  // Floor for the interval
	DecayDivisor   int `yaml:"decay_divisor"` // speed -= speed / divisor on level-up
}

// ScoringConfig defines rewards and level thresholds.
type ScoringConfig struct {
	RowsPerLevel int         `yaml:"rows_per_level"`
	Rewards      map[int]int `yaml:"rewards"` // Rows cleared at once -> base points
}

// MaxSimultaneousRows is the most rows a single piece can complete.
const MaxSimultaneousRows = 4

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the engine can run with this configuration.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width < 4:
		return fmt.Errorf("config: board width %d below 4: %w", c.Board.Width, ErrInvalid)
	case c.Board.SpawnRows != 2:
		return fmt.Errorf("config: spawn_rows must be 2, got %d: %w", c.Board.SpawnRows, ErrInvalid)
	case c.Board.Height < c.Board.SpawnRows+4:
		return fmt.Errorf("config: board height %d too small: %w", c.Board.Height, ErrInvalid)
	case c.Gravity.MinSpeedMs < 1:
		return fmt.Errorf("config: min_speed_ms must be positive: %w", ErrInvalid)
	case c.Gravity.InitialSpeedMs < c.Gravity.MinSpeedMs:
		return fmt.Errorf("config: initial_speed_ms %d below min_speed_ms %d: %w",
			c.Gravity.InitialSpeedMs, c.Gravity.MinSpeedMs, ErrInvalid)
	case c.Gravity.DecayDivisor < 2:
		return fmt.Errorf("config: decay_divisor must be at least 2: %w", ErrInvalid)
	case c.Scoring.RowsPerLevel < 1:
		return fmt.Errorf("config: rows_per_level must be positive: %w", ErrInvalid)
	case c.StartLevel < 1:
		return fmt.Errorf("config: start_level must be at least 1: %w", ErrInvalid)
	}

	for rows := 1; rows <= MaxSimultaneousRows; rows++ {
		reward, ok := c.Scoring.Rewards[rows]
		if !ok || reward < 0 {
			return fmt.Errorf("config: missing reward for %d rows: %w", rows, ErrInvalid)
		}
	}
	return nil
}

// DifficultyPreset represents a named starting speed.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset converts a CLI value. Empty input yields an empty preset.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// InitialSpeedForPreset returns the starting gravity interval in milliseconds.
// Zero means the preset leaves the configured value alone.
func InitialSpeedForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1000
	case DifficultyNormal:
		return 800
	case DifficultyHard:
		return 500
	default:
		return 0
	}
}

// ApplyTetrisPreset adjusts the starting speed. The decay rule is untouched.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	speed := InitialSpeedForPreset(preset)
	if speed == 0 {
		return
	}
	cfg.Gravity.InitialSpeedMs = max(speed, cfg.Gravity.MinSpeedMs)
}

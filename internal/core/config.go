package core

// RuntimeConfig is handed to a game on Reset.
// Screen size drives layout; Seed makes piece order reproducible.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the summary the platform needs after every step:
// what to save on game over and whether the session is frozen.
type GameState struct {
	Score    int
	Level    int
	Rows     int // Rows cleared in total this session
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}

package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Phase is the orchestrator state. Pause is tracked separately.
type Phase int

const (
	PhaseAwaitingSpawn Phase = iota
	PhaseFalling
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSpawn:
		return "awaiting-spawn"
	case PhaseFalling:
		return "falling"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Session is the complete state of one game.
// It is mutated only by Tick, Apply, ClearCompletedRows and the request
// functions; readers must not access it while a tick is in progress.
type Session struct {
	cfg     config.TetrisConfig
	factory ShapeFactory

	grid    *Grid
	current *Piece
	next    Piece
	nextID  PieceID

	score     int
	level     int
	completed int // Rows since the last level-up
	totalRows int
	speed     int // Gravity interval in milliseconds
	stats     [KindCount]int

	// Gravity clock: active play time only, frozen while paused.
	clock        time.Duration
	lastNow      time.Duration
	clockStarted bool
	lastGravity  time.Duration

	gameOver bool
	paused   bool
	pending  *Movement

	events []Event
}

// NewSession creates a session ready for its first tick.
// cfg must already be validated.
func NewSession(cfg config.TetrisConfig, factory ShapeFactory) *Session {
	s := &Session{
		cfg:     cfg,
		factory: factory,
		grid:    NewGrid(cfg.Board.Width, cfg.Board.Height),
	}
	NewGame(s)
	return s
}

// NewGame discards all progress and starts over with an empty grid.
func NewGame(s *Session) {
	s.grid.Reset()
	s.current = nil
	s.next = s.factory.CreateRandomShape()
	s.nextID = 0

	s.score = 0
	s.level = s.cfg.StartLevel
	s.completed = 0
	s.totalRows = 0
	s.speed = s.cfg.Gravity.InitialSpeedMs
	s.stats = [KindCount]int{}

	s.clock = 0
	s.lastNow = 0
	s.clockStarted = false
	s.lastGravity = 0

	s.gameOver = false
	s.paused = false
	s.pending = nil
	s.events = nil
}

// RequestMovement stores m for the next tick, replacing any earlier request.
func RequestMovement(s *Session, m Movement) {
	s.pending = &m
}

// RequestPause freezes the session until Resume.
func RequestPause(s *Session) {
	s.paused = true
}

// Resume lifts a pause. Time spent paused does not count toward gravity.
// The session only sees time through Tick, so a pause and resume with no
// Tick in between freezes nothing.
func Resume(s *Session) {
	s.paused = false
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// Config returns the configuration the session runs with.
func (s *Session) Config() config.TetrisConfig { return s.cfg }

// Grid returns the occupancy grid. Callers must not modify it.
func (s *Session) Grid() *Grid { return s.grid }

// Current returns the falling piece, or false while awaiting a spawn.
func (s *Session) Current() (Piece, bool) {
	if s.current == nil {
		return Piece{}, false
	}
	return *s.current, true
}

// Next returns the piece that spawns after the current one.
func (s *Session) Next() Piece { return s.next }

// Score returns the points earned so far.
func (s *Session) Score() int { return s.score }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// CompletedRows returns the rows cleared since the last level-up.
func (s *Session) CompletedRows() int { return s.completed }

// TotalRows returns every row cleared this game.
func (s *Session) TotalRows() int { return s.totalRows }

// Speed returns the gravity interval in milliseconds.
func (s *Session) Speed() int { return s.speed }

// GameOver reports whether the session has ended. Only NewGame revives it.
func (s *Session) GameOver() bool { return s.gameOver }

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// Statistics returns how many pieces of each kind have spawned, indexed by
// ShapeKind.
func (s *Session) Statistics() [KindCount]int { return s.stats }

// Phase returns the orchestrator state.
func (s *Session) Phase() Phase {
	switch {
	case s.gameOver:
		return PhaseGameOver
	case s.current == nil:
		return PhaseAwaitingSpawn
	default:
		return PhaseFalling
	}
}

// Pending returns the movement waiting for the next tick, if any.
func (s *Session) Pending() (Movement, bool) {
	if s.pending == nil {
		return 0, false
	}
	return *s.pending, true
}

package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry and score-table identifier.
const GameID = "tetris"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts a Session to the registry.Game interface: it maps input
// actions to engine requests and derives the engine clock from the tick
// counter.
type Game struct {
	cfg      config.TetrisConfig
	fixedCfg bool
	cfgErr   error // Why Reset fell back to the defaults
	runtime  core.RuntimeConfig
	rng      *rand.Rand

	session *Session
	tick    uint64
	events  []Event

	screenW    int
	screenH    int
	tooSmall   bool
	userPaused bool
	layout     layout
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg, fixedCfg: true}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadTetris(configPath)
		g.cfgErr = err
		if err != nil {
			cfg = config.DefaultTetrisConfig()
		}
		if difficultyPreset != "" {
			config.ApplyTetrisPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.events = nil
	g.userPaused = false
	g.startSession()
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// startSession builds a new session with a factory seeded from the game RNG,
// so restarts stay reproducible for a given runtime seed.
func (g *Game) startSession() {
	factory := NewRandomShapeFactory(g.cfg.Board.Width, g.rng.Int63())
	g.session = NewSession(g.cfg, factory)
	g.userPaused = false
}

// Resize updates the layout for a new screen size. Play is held while the
// screen cannot fit the board and resumes once it can.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.layout = computeLayout(g.cfg, width, height)
	g.tooSmall = !g.layout.fits
	g.syncPause()
}

func (g *Game) syncPause() {
	if g.session == nil {
		return
	}
	if g.userPaused || g.tooSmall {
		RequestPause(g.session)
	} else {
		Resume(g.session)
	}
}

// Step advances the game by one host tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if !input.Empty() {
		g.handleInput(input)
	}

	res := Tick(g.session, g.now())
	g.events = res.Events
	return core.StepResult{State: g.State()}
}

// handleInput turns the frame's actions into session commands.
func (g *Game) handleInput(input core.InputFrame) {
	if input.Has(core.ActionNewGame) || (input.Has(core.ActionRestart) && g.session.GameOver()) {
		g.startSession()
		g.syncPause()
	}

	if input.Has(core.ActionPause) && !g.session.GameOver() {
		g.userPaused = !g.userPaused
		g.syncPause()
	}

	// Later requests overwrite earlier ones within a frame.
	for _, b := range actionMovements {
		if input.Has(b.action) {
			RequestMovement(g.session, b.movement)
		}
	}
}

var actionMovements = []struct {
	action   core.Action
	movement Movement
}{
	{core.ActionLeft, MoveLeft},
	{core.ActionRight, MoveRight},
	{core.ActionRotate, MoveRotateClockwise},
	{core.ActionDown, MoveDown},
}

// now converts the tick counter to engine time.
func (g *Game) now() time.Duration {
	return time.Duration(g.tick) * time.Second / time.Duration(g.runtime.TickRate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		Rows:     g.session.TotalRows(),
		GameOver: g.session.GameOver(),
		Paused:   g.session.Paused(),
	}
}

// Events returns what happened during the most recent Step.
func (g *Game) Events() []Event {
	return g.events
}

// Session exposes the underlying engine session.
func (g *Game) Session() *Session {
	return g.session
}

// ConfigError returns the load failure behind the last Reset, or nil when the
// configuration loaded. A non-nil error means the defaults are in use.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// TooSmall reports whether the screen cannot fit the board.
func (g *Game) TooSmall() bool {
	return g.tooSmall
}

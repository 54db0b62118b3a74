package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// ScoreSaver persists a finished game.
type ScoreSaver interface {
	SaveScore(gameID string, score, level, rows int) (int64, error)
}

// Model is the Bubble Tea model that hosts a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      ScoreSaver
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store ScoreSaver, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())

	gameCfg := cfg
	gameCfg.ScreenH = m.gameHeight()
	m.game.Reset(gameCfg)
	m.logConfigFallback()
	m.gameState = m.game.State()
	return m
}

// configReporter is implemented by games that load their own configuration.
type configReporter interface {
	ConfigError() error
}

// logConfigFallback warns when the game could not load its configuration and
// started with the defaults.
func (m Model) logConfigFallback() {
	if r, ok := m.game.(configReporter); ok {
		if err := r.ConfigError(); err != nil {
			m.logger.Warn("config not loaded, using defaults", "game", m.game.ID(), "err", err)
		}
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed, "fps", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeGame()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score, "level", m.gameState.Level)
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeGame()
	return m, nil
}

// resizeGame gives the game everything above the help bar.
// Games that cannot resize in place are reset.
func (m *Model) resizeGame() {
	h := m.gameHeight()
	m.screen.Resize(m.config.ScreenW, h)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(m.config.ScreenW, h)
		return
	}
	if !m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenH = h
		m.game.Reset(cfg)
		m.logConfigFallback()
	}
}

func (m Model) gameHeight() int {
	return max(m.config.ScreenH-lipgloss.Height(m.help.View(m.keyMapper.Keys())), 0)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.logEvents()

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) saveScore() {
	s := m.gameState
	if m.store == nil || s.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), s.Score, s.Level, s.Rows); err != nil {
		m.logger.Error("cannot save score", "err", err)
		return
	}
	m.logger.Info("score saved", "score", s.Score, "level", s.Level, "rows", s.Rows)
}

// logEvents records what the engine reported during the last step.
func (m Model) logEvents() {
	g, ok := m.game.(*tetris.Game)
	if !ok {
		return
	}
	for _, e := range g.Events() {
		switch ev := e.(type) {
		case tetris.EventSpawn:
			m.logger.Debug("spawn", "id", ev.Piece.ID, "kind", ev.Piece.Kind)
		case tetris.EventLock:
			m.logger.Debug("lock", "id", ev.Piece.ID, "kind", ev.Piece.Kind, "blocks", ev.Piece.Blocks())
		case tetris.EventRowsCleared:
			m.logger.Info("rows cleared", "rows", ev.Rows, "points", ev.Points)
		case tetris.EventLevelUp:
			m.logger.Info("level up", "level", ev.Level, "speed_ms", ev.SpeedMs)
		case tetris.EventGameOver:
			m.logger.Info("game over", "score", ev.Score, "level", ev.Level)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	var saver ScoreSaver
	if store != nil {
		saver = store
	}
	model := NewModel(game, saver, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

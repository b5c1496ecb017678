package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/samegame/internal/core"
	"github.com/vovakirdan/samegame/internal/logging"
	"github.com/vovakirdan/samegame/internal/registry"
	"github.com/vovakirdan/samegame/internal/storage"
)

// Recorder is implemented by games whose finished runs can be stored.
type Recorder interface {
	Record() (storage.Run, bool)
}

// Model is the Bubble Tea model for watching a replay.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       ReplayKeyMap
	help       help.Model
	err        error // Board failed to load
	standalone bool  // Back quits instead of returning to a menu
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the finished run has been stored
}

// NewModel creates a replay model and loads cfg.Board into game.
// A nil store disables result persistence; a nil logger discards output.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = logging.Discard()
	}

	err := game.Reset(cfg)
	if err != nil {
		logger.Warn("could not load board", "board", cfg.Board.ID, "error", err)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keys:       DefaultReplayKeyMap(),
		help:       h,
		err:        err,
	}
}

// screenHeight leaves the last terminal line for the help bar.
func screenHeight(h int) int {
	return max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickMillis)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, screenHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the pressed action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick advances the replay and stores the run once it is over.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Moved {
		m.logger.Debug("move", "board", m.config.Board.ID, "moves", m.gameState.Moves, "score", m.gameState.Score)
	}

	switch {
	case !m.gameState.GameOver:
		m.runSaved = false
	case !m.runSaved:
		m.saveRun()
		m.runSaved = true
	}

	return m, tickCmd(m.config.TickMillis)
}

// saveRun stores the finished run. Failures are logged; the replay continues.
func (m *Model) saveRun() {
	if m.store == nil || m.err != nil {
		return
	}
	rec, ok := m.game.(Recorder)
	if !ok {
		return
	}
	run, ok := rec.Record()
	if !ok {
		return
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Error("could not save run", "board", run.BoardID, "error", err)
		return
	}
	m.logger.Info("run saved", "id", id, "board", run.BoardID, "score", run.Score, "remaining", run.Remaining)
}

// saveScreenshot writes the current screen to ~/.samegame/screenshots.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".samegame", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.config.Board.ID, timestamp))

	//nolint:errcheck // Best-effort save, replay continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the board and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Err returns the board loading error, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run replays the board in cfg on the local terminal until the user quits.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)
	if err := model.Err(); err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

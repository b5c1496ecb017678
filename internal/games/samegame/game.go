// Package samegame provides the SameGame replay for the platform: the greedy
// solver plays a board move by move while the viewer watches, pauses or
// steps through it.
package samegame

import (
	"fmt"

	platformcore "github.com/vovakirdan/samegame/internal/core"
	"github.com/vovakirdan/samegame/internal/games/samegame/boards/formats"
	"github.com/vovakirdan/samegame/internal/games/samegame/core"
	"github.com/vovakirdan/samegame/internal/registry"
	"github.com/vovakirdan/samegame/internal/storage"
)

const (
	minStepMillis = 50
	maxStepMillis = 3000
)

func init() {
	registry.Register("samegame", func() registry.Game {
		return New("samegame", false)
	})
	registry.Register("samegame_legacy", func() registry.Game {
		return New("samegame_legacy", true)
	})
}

// Game replays the greedy solution of one board.
type Game struct {
	id     string
	legacy bool

	board formats.Board
	rules core.Rules
	game  *core.Game

	// Screen dimensions
	screenW int
	screenH int

	// Pacing
	tickMillis int
	stepMillis int
	elapsed    int
	paused     bool

	err error // Board that could not be loaded
}

// New creates a replay variant. With legacy set, compression uses the
// historical edge scan.
func New(id string, legacy bool) *Game {
	return &Game{id: id, legacy: legacy}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.legacy {
		return "SameGame (legacy scan)"
	}
	return "SameGame"
}

// Description returns a one-line summary of the variant's rules.
func (g *Game) Description() string {
	if g.legacy {
		return "Greedy replay; the last column and top row never shift"
	}
	return "Greedy replay; largest cluster first, (n-2)² points"
}

// Reset loads cfg.Board and rewinds to the initial position.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) error {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickMillis = cfg.TickMillis
	g.stepMillis = cfg.StepMillis
	g.elapsed = 0
	g.paused = cfg.StepMillis == 0
	g.rules = core.Rules{
		MinClusterSize: cfg.MinClusterSize,
		ClearBonus:     cfg.ClearBonus,
		LegacyEdgeScan: g.legacy,
	}

	board, err := formats.FromSpec(cfg.Board)
	if err != nil {
		g.err = err
		g.game = nil
		return fmt.Errorf("samegame: loading board %s: %w", cfg.Board.ID, err)
	}
	g.board = board
	g.err = nil
	return g.restart()
}

// restart rebuilds the game from the loaded board.
func (g *Game) restart() error {
	game, err := g.board.NewGame(g.rules)
	if err != nil {
		g.err = err
		g.game = nil
		return fmt.Errorf("samegame: building board %s: %w", g.board.ID, err)
	}
	g.game = game
	g.elapsed = 0
	return nil
}

// Step advances the replay by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.game == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		// Reset already built this board once; a failure is kept in g.err
		// and shown by Render.
		_ = g.restart()
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
		g.elapsed = 0
	}
	if in.Has(platformcore.ActionFaster) {
		g.stepMillis = platformcore.Clamp(g.stepMillis/2, minStepMillis, maxStepMillis)
	}
	if in.Has(platformcore.ActionSlower) {
		g.stepMillis = platformcore.Clamp(g.stepMillis*2, minStepMillis, maxStepMillis)
	}

	moved := false
	switch {
	case in.Has(platformcore.ActionStep):
		_, moved = g.game.Step()
		g.elapsed = 0
	case !g.paused && g.stepMillis > 0:
		g.elapsed += g.tickMillis
		if g.elapsed >= g.stepMillis {
			g.elapsed = 0
			_, moved = g.game.Step()
		}
	}

	return platformcore.StepResult{State: g.State(), Moved: moved}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.game == nil {
		return platformcore.GameState{GameOver: true, End: "invalid board"}
	}
	return platformcore.GameState{
		Score:     g.game.Score(),
		Moves:     len(g.game.Moves()),
		Remaining: g.game.Remaining(),
		GameOver:  g.game.Done(),
		Paused:    g.paused,
		End:       string(g.game.End()),
	}
}

// Snapshot returns the engine snapshot, or false when no board is loaded.
func (g *Game) Snapshot() (core.Snapshot, bool) {
	if g.game == nil {
		return core.Snapshot{}, false
	}
	return g.game.Snapshot(), true
}

// Board returns the loaded board.
func (g *Game) Board() formats.Board {
	return g.board
}

// StepMillis returns the current delay between automatic moves.
func (g *Game) StepMillis() int {
	return g.stepMillis
}

// Record returns the finished run for persistence. It reports false while
// the replay is still running or no board is loaded.
func (g *Game) Record() (storage.Run, bool) {
	if g.game == nil || !g.game.Done() {
		return storage.Run{}, false
	}
	return storage.Run{
		BoardID:   g.board.ID,
		Variant:   g.id,
		Score:     g.game.Score(),
		Remaining: g.game.Remaining(),
		End:       g.game.End(),
		Moves:     g.game.Moves(),
	}, true
}

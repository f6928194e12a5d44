// Package matatu implements a self-driving minibus on a four-lane road.
// Obstacles and zebra crossings scroll toward the bus; an autopilot swaps
// lanes to dodge obstacles and the world stops at each crossing until the
// player lets the bus continue.
package matatu

import (
	"fmt"

	"github.com/vovakirdan/matatu/internal/config"
	"github.com/vovakirdan/matatu/internal/core"
	"github.com/vovakirdan/matatu/internal/registry"
)

// GameID is the registry identifier of the simulation.
const GameID = "matatu"

// configOverride, when set, replaces the config search on Reset.
var configOverride *config.MatatuConfig

// UseConfig makes every subsequent Reset use cfg instead of loading from disk.
func UseConfig(cfg config.MatatuConfig) {
	configOverride = &cfg
}

// Game adapts World to the platform's game interface.
type Game struct {
	world     *World
	runtime   core.RuntimeConfig
	configErr error
}

// New creates a new simulation instance. Reset must be called before Step.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Matatu Simulator"
}

// Reset starts a fresh run. If the on-disk config cannot be loaded the run
// uses the reference config and ConfigError reports why.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	cfg, err := resolveConfig()
	g.configErr = err
	g.world = NewWorld(cfg, runtime.Seed)
}

// ConfigError returns the config load failure of the last Reset, if any.
func (g *Game) ConfigError() error {
	return g.configErr
}

func resolveConfig() (config.MatatuConfig, error) {
	if configOverride != nil {
		return *configOverride, nil
	}
	cfg, err := config.LoadMatatu("")
	if err != nil {
		return config.DefaultMatatuConfig(), err
	}
	return cfg, nil
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	events := g.world.Tick(in.Has(core.ActionResume))
	return core.StepResult{State: g.State(), Events: events}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	cfg := g.world.Config()
	snap := g.world.Snapshot()
	renderRoad(dst, snap, &cfg)

	stats := g.world.Stats()
	hud := fmt.Sprintf(" Tick: %d  Lane: %d  Dodges: %d ", snap.Tick, snap.TargetLane, stats.Dodges)
	dst.DrawText(1, 0, hud, core.ColorBrightYellow)
	pauses := fmt.Sprintf(" Crossings: %d ", stats.Pauses)
	dst.DrawText(dst.Width()-len(pauses)-1, 0, pauses, core.ColorBrightYellow)

	if snap.Paused {
		drawCenteredMessage(dst, "Zebra Crossing!!!", "Press SPACE to continue")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Paused: g.world.Paused(),
		Stats:  g.world.Stats(),
	}
}

// Snapshot returns the render snapshot of the current run.
func (g *Game) Snapshot() Snapshot {
	return g.world.Snapshot()
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

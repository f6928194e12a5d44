// Package headless steps a game without a terminal, as fast as possible.
// Runs are deterministic for a given seed and resume policy.
package headless

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matatu/internal/core"
	"github.com/vovakirdan/matatu/internal/logging"
	"github.com/vovakirdan/matatu/internal/registry"
)

// NeverResume leaves the first pause in place for the rest of the run.
const NeverResume = -1

// Options controls a headless run.
type Options struct {
	Ticks       int         // Ticks to step
	ResumeAfter int         // Frozen ticks to wait at each crossing before resuming; NeverResume to stay paused
	Logger      *log.Logger // Receives step events; may be nil
}

// Run resets game with cfg and steps it opts.Ticks times.
// It returns the final state; on cancellation the state reached so far is
// returned together with the context error.
func Run(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, opts Options) (core.GameState, error) {
	if opts.Ticks <= 0 {
		return core.GameState{}, errors.New("headless: tick count must be positive")
	}

	game.Reset(cfg)
	state := game.State()
	frame := core.NewInputFrame()
	pausedAt := 0

	for i := 0; i < opts.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		frame.Clear()
		if state.Paused && opts.ResumeAfter >= 0 && state.Stats.PausedTicks-pausedAt >= opts.ResumeAfter {
			frame.Set(core.ActionResume)
		}

		wasPaused := state.Paused
		result := game.Step(frame)
		state = result.State
		logging.LogEvents(opts.Logger, result.Events)

		if state.Paused && !wasPaused {
			pausedAt = state.Stats.PausedTicks
		}
	}

	return state, nil
}

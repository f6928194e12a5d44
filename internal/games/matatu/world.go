package matatu

import (
	"math/rand"

	"github.com/vovakirdan/matatu/internal/config"
	"github.com/vovakirdan/matatu/internal/core"
)

// World is the whole simulation state. Every component is owned here and
// mutated only from Tick, in a fixed order.
type World struct {
	cfg           config.MatatuConfig
	lanes         LaneTable
	scroll        Scroll
	obstacles     *ObstacleFeed
	crossings     *CrossingFeed
	obstacleTimer SpawnTimer
	crossingTimer SpawnTimer
	avoider       Avoider
	pause         Pauser
	agent         Agent
	tick          uint64
	stats         core.RunStats
	events        []core.Event
}

// NewWorld builds a world from a validated config. The seed drives obstacle lane choice.
func NewWorld(cfg config.MatatuConfig, seed int64) *World {
	rate := cfg.World.TickRate
	lanes := NewLaneTable(cfg.Lanes)
	w := &World{
		cfg:           cfg,
		lanes:         lanes,
		scroll:        NewScroll(cfg.World.ScrollStep, cfg.World.Height),
		obstacles:     NewObstacleFeed(lanes, cfg.Obstacles.SpawnY, rand.New(rand.NewSource(seed))),
		crossings:     NewCrossingFeed(cfg.Crossings.SpawnY),
		obstacleTimer: NewSpawnTimer(cfg.Obstacles.EveryTicks(rate)),
		crossingTimer: NewSpawnTimer(cfg.Crossings.EveryTicks(rate)),
		avoider:       NewAvoider(lanes, &cfg),
		pause:         NewPauser(&cfg),
		agent: Agent{
			X:    lanes.X(cfg.Agent.StartLane),
			Y:    cfg.Agent.Y,
			Lane: cfg.Agent.StartLane,
		},
	}
	return w
}

// Tick advances the simulation one fixed step. resume is the edge of the
// external resume signal; it only has an effect while paused.
// Returns the events of this tick.
func (w *World) Tick(resume bool) []core.Event {
	w.tick++
	w.stats.Ticks++
	w.events = nil

	// Timers fire on schedule regardless of pause; firings while paused are dropped
	w.handleSpawns()

	if resume && w.pause.Paused() {
		id, removed := w.pause.Resume(w.crossings)
		w.emit(EventResumed, true, "zone", id, "removed", removed, "grace", w.pause.State().IgnoreTicks)
	}

	if w.pause.Paused() {
		w.stats.PausedTicks++
		return w.events
	}

	height := w.cfg.World.Height
	dy := w.cfg.World.ScrollStep

	w.scroll.Advance()

	w.obstacles.Advance(dy)
	if n := w.obstacles.Evict(height); n > 0 {
		w.emit(EventObstaclesEvicted, false, "count", n)
	}
	w.crossings.Advance(dy)
	w.crossings.Evict(height)

	if from, changed := w.avoider.Decide(&w.agent, w.obstacles.Obstacles()); changed {
		w.stats.Dodges++
		w.emit(EventLaneChanged, false, "from", from, "to", w.agent.Lane)
	}
	w.avoider.Move(&w.agent)

	if id, paused := w.pause.Detect(w.agent.Y, w.crossings.Zones()); paused {
		w.stats.Pauses++
		w.emit(EventPaused, true, "zone", id)
	}

	return w.events
}

func (w *World) handleSpawns() {
	paused := w.pause.Paused()

	if w.obstacleTimer.Tick() {
		if paused {
			w.stats.SpawnsIgnored++
			w.emit(EventSpawnIgnored, false, "feed", "obstacle")
		} else {
			o := w.obstacles.Spawn()
			w.stats.ObstaclesSpawned++
			w.emit(EventObstacleSpawned, false, "x", o.X)
		}
	}

	if w.crossingTimer.Tick() {
		if paused {
			w.stats.SpawnsIgnored++
			w.emit(EventSpawnIgnored, false, "feed", "crossing")
		} else {
			z := w.crossings.Spawn()
			w.stats.CrossingsSpawned++
			w.emit(EventCrossingSpawned, false, "zone", z.ID)
		}
	}
}

// Paused reports whether the world is frozen at a crossing.
func (w *World) Paused() bool {
	return w.pause.Paused()
}

// Stats returns the run counters so far.
func (w *World) Stats() core.RunStats {
	return w.stats
}

// Config returns the configuration the world was built from.
func (w *World) Config() config.MatatuConfig {
	return w.cfg
}

package matatu

import "github.com/vovakirdan/matatu/internal/core"

// Event kinds emitted by World.Tick.
const (
	EventObstacleSpawned  = "obstacle spawned"
	EventCrossingSpawned  = "crossing spawned"
	EventSpawnIgnored     = "spawn ignored"
	EventObstaclesEvicted = "obstacles evicted"
	EventLaneChanged      = "lane changed"
	EventPaused           = "paused at crossing"
	EventResumed          = "resumed"
)

func (w *World) emit(kind string, notable bool, attrs ...any) {
	w.events = append(w.events, core.Event{
		Tick:    w.tick,
		Kind:    kind,
		Notable: notable,
		Attrs:   attrs,
	})
}

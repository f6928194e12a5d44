package matatu

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// Mutating it has no effect on the world.
type Snapshot struct {
	Tick        uint64
	AgentX      float64
	AgentY      float64
	TargetLane  int
	Lanes       []float64
	Obstacles   []Obstacle
	Crossings   []CrossingZone
	Scroll      float64
	Paused      bool
	ActiveZone  ZoneID
	IgnoreTicks int
}

// Snapshot captures the current world state.
func (w *World) Snapshot() Snapshot {
	ps := w.pause.State()
	return Snapshot{
		Tick:        w.tick,
		AgentX:      w.agent.X,
		AgentY:      w.agent.Y,
		TargetLane:  w.agent.Lane,
		Lanes:       append([]float64(nil), w.lanes.xs...),
		Obstacles:   append([]Obstacle(nil), w.obstacles.Obstacles()...),
		Crossings:   append([]CrossingZone(nil), w.crossings.Zones()...),
		Scroll:      w.scroll.Offset(),
		Paused:      ps.Paused,
		ActiveZone:  ps.Active,
		IgnoreTicks: ps.IgnoreTicks,
	}
}

package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (0 = use the game's own rate)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// RunStats are the counters a simulation accumulates over one run.
type RunStats struct {
	Ticks            int // Ticks stepped, paused or not
	PausedTicks      int // Ticks spent frozen
	Pauses           int // Pause transitions
	Dodges           int // Target lane changes made by the controller
	ObstaclesSpawned int
	CrossingsSpawned int
	SpawnsIgnored    int // Spawn timers that fired while paused
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Paused bool // Whether the simulation is frozen
	Stats  RunStats
}

// Event is a notable thing that happened during one tick.
// Attrs holds alternating key/value pairs suitable for structured logging.
type Event struct {
	Tick    uint64
	Kind    string
	Notable bool // Worth logging at info level
	Attrs   []any
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

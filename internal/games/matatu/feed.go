package matatu

import (
	"math/rand"
)

// SpawnTimer is a countdown-to-spawn measured in ticks.
// It keeps counting while the world is paused; World decides
// whether a firing is honoured or dropped.
type SpawnTimer struct {
	every   int
	elapsed int
}

// NewSpawnTimer creates a timer that fires once every n ticks (n >= 1).
func NewSpawnTimer(n int) SpawnTimer {
	if n < 1 {
		n = 1
	}
	return SpawnTimer{every: n}
}

// Tick advances the timer and reports whether it fired.
func (t *SpawnTimer) Tick() bool {
	t.elapsed++
	if t.elapsed >= t.every {
		t.elapsed = 0
		return true
	}
	return false
}

// Obstacle is a vehicle in some lane, scrolling toward the agent.
type Obstacle struct {
	X float64 // Lane coordinate at spawn
	Y float64
}

// ObstacleFeed owns the active obstacles.
type ObstacleFeed struct {
	items  []Obstacle
	spawnY float64
	lanes  LaneTable
	rng    *rand.Rand
}

// NewObstacleFeed creates an empty feed spawning at spawnY.
func NewObstacleFeed(lanes LaneTable, spawnY float64, rng *rand.Rand) *ObstacleFeed {
	return &ObstacleFeed{
		items:  make([]Obstacle, 0, 8),
		spawnY: spawnY,
		lanes:  lanes,
		rng:    rng,
	}
}

// Spawn appends an obstacle in a uniformly chosen lane, above the visible world.
func (f *ObstacleFeed) Spawn() Obstacle {
	o := Obstacle{X: f.lanes.X(f.lanes.Random(f.rng)), Y: f.spawnY}
	f.items = append(f.items, o)
	return o
}

// Advance moves every obstacle down by dy.
func (f *ObstacleFeed) Advance(dy float64) {
	for i := range f.items {
		f.items[i].Y += dy
	}
}

// Evict removes obstacles that reached the bottom of the world and
// returns how many were removed. Survivors keep their order.
func (f *ObstacleFeed) Evict(height float64) int {
	kept := f.items[:0]
	for _, o := range f.items {
		if o.Y < height {
			kept = append(kept, o)
		}
	}
	removed := len(f.items) - len(kept)
	f.items = kept
	return removed
}

// Obstacles returns the active obstacles in spawn order. Callers must not modify it.
func (f *ObstacleFeed) Obstacles() []Obstacle {
	return f.items
}

// Len returns the number of active obstacles.
func (f *ObstacleFeed) Len() int {
	return len(f.items)
}

// ZoneID identifies one crossing zone instance. Zero means no zone.
type ZoneID uint64

// NoZone is the zero ZoneID.
const NoZone ZoneID = 0

// CrossingZone is a zebra crossing spanning the full road width.
type CrossingZone struct {
	ID ZoneID
	X  float64 // Left edge of the road span; fixed
	Y  float64
}

// CrossingFeed owns the active crossing zones.
type CrossingFeed struct {
	zones  []CrossingZone
	spawnY float64
	lastID ZoneID
}

// NewCrossingFeed creates an empty feed spawning at spawnY.
func NewCrossingFeed(spawnY float64) *CrossingFeed {
	return &CrossingFeed{
		zones:  make([]CrossingZone, 0, 2),
		spawnY: spawnY,
	}
}

// Spawn appends a new crossing above the visible world with a fresh ID.
func (f *CrossingFeed) Spawn() CrossingZone {
	f.lastID++
	z := CrossingZone{ID: f.lastID, X: 0, Y: f.spawnY}
	f.zones = append(f.zones, z)
	return z
}

// Advance moves every crossing down by dy.
func (f *CrossingFeed) Advance(dy float64) {
	for i := range f.zones {
		f.zones[i].Y += dy
	}
}

// Evict removes crossings that reached the bottom of the world and
// returns how many were removed. Survivors keep their order.
func (f *CrossingFeed) Evict(height float64) int {
	kept := f.zones[:0]
	for _, z := range f.zones {
		if z.Y < height {
			kept = append(kept, z)
		}
	}
	removed := len(f.zones) - len(kept)
	f.zones = kept
	return removed
}

// Remove deletes the crossing with the given ID.
// Returns false, without error, when it is already gone.
func (f *CrossingFeed) Remove(id ZoneID) bool {
	for i, z := range f.zones {
		if z.ID == id {
			f.zones = append(f.zones[:i], f.zones[i+1:]...)
			return true
		}
	}
	return false
}

// Zones returns the active crossings in spawn order. Callers must not modify it.
func (f *CrossingFeed) Zones() []CrossingZone {
	return f.zones
}

// Len returns the number of active crossings.
func (f *CrossingFeed) Len() int {
	return len(f.zones)
}

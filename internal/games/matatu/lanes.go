package matatu

import (
	"fmt"
	"math/rand"
)

// LaneTable is the fixed, ordered set of lane x coordinates.
// It never changes after construction.
type LaneTable struct {
	xs []float64
}

// NewLaneTable copies the given coordinates into a lane table.
func NewLaneTable(xs []float64) LaneTable {
	return LaneTable{xs: append([]float64(nil), xs...)}
}

// Len returns the number of lanes.
func (t LaneTable) Len() int {
	return len(t.xs)
}

// X returns the coordinate of lane i.
// An index outside [0, Len) is a programming error and panics.
func (t LaneTable) X(i int) float64 {
	if !t.Valid(i) {
		panic(fmt.Sprintf("matatu: lane index %d out of range [0, %d)", i, len(t.xs)))
	}
	return t.xs[i]
}

// Valid reports whether i names a lane.
func (t LaneTable) Valid(i int) bool {
	return i >= 0 && i < len(t.xs)
}

// Random picks a lane index uniformly.
func (t LaneTable) Random(rng *rand.Rand) int {
	return rng.Intn(len(t.xs))
}

// Span returns the distance between the outermost lanes.
func (t LaneTable) Span() float64 {
	if len(t.xs) == 0 {
		return 0
	}
	return t.xs[len(t.xs)-1] - t.xs[0]
}

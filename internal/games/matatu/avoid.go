package matatu

import (
	"math"

	"github.com/vovakirdan/matatu/internal/config"
	"github.com/vovakirdan/matatu/internal/core"
)

// Agent is the self-driving vehicle. It only moves horizontally.
type Agent struct {
	X    float64 // Continuous position, lags Lane's coordinate while changing lanes
	Y    float64 // Fixed
	Lane int     // Target lane index
}

// Avoider decides the agent's target lane and steers toward it.
type Avoider struct {
	lanes     LaneTable
	proximity float64
	tolerance float64
	step      float64
}

// NewAvoider creates a controller from the avoidance and agent config.
func NewAvoider(lanes LaneTable, cfg *config.MatatuConfig) Avoider {
	return Avoider{
		lanes:     lanes,
		proximity: cfg.Avoidance.Proximity,
		tolerance: cfg.Avoidance.LaneTolerance,
		step:      cfg.Agent.Step,
	}
}

// threatens reports whether o is near the agent's row and inside the lane at laneX.
func (a Avoider) threatens(o Obstacle, agentY, laneX float64) bool {
	return math.Abs(o.Y-agentY) < a.proximity && math.Abs(o.X-laneX) < a.tolerance
}

// laneBlocked reports whether any obstacle threatens the lane at laneX.
func (a Avoider) laneBlocked(obstacles []Obstacle, agentY, laneX float64) bool {
	for _, o := range obstacles {
		if a.threatens(o, agentY, laneX) {
			return true
		}
	}
	return false
}

// InDanger reports whether any obstacle threatens the agent's target lane.
func (a Avoider) InDanger(agent Agent, obstacles []Obstacle) bool {
	return a.laneBlocked(obstacles, agent.Y, a.lanes.X(agent.Lane))
}

// SafeLanes returns, in ascending order, the lanes no obstacle threatens.
func (a Avoider) SafeLanes(agentY float64, obstacles []Obstacle) []int {
	safe := make([]int, 0, a.lanes.Len())
	for i := 0; i < a.lanes.Len(); i++ {
		if !a.laneBlocked(obstacles, agentY, a.lanes.X(i)) {
			safe = append(safe, i)
		}
	}
	return safe
}

// NearestLane picks the safe lane closest to current by index.
// Ties go to the lower index. With no safe lane, current is kept.
func NearestLane(current int, safe []int) int {
	best := current
	bestDist := -1
	for _, i := range safe {
		d := core.Abs(i - current)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Decide re-targets the agent if its lane is threatened.
// Returns the previous lane and whether the target changed.
func (a Avoider) Decide(agent *Agent, obstacles []Obstacle) (from int, changed bool) {
	from = agent.Lane
	if !a.InDanger(*agent, obstacles) {
		return from, false
	}
	agent.Lane = NearestLane(agent.Lane, a.SafeLanes(agent.Y, obstacles))
	if !a.lanes.Valid(agent.Lane) {
		panic("matatu: avoidance selected an invalid lane")
	}
	return from, agent.Lane != from
}

// Move steps the agent's position one tick toward its target lane.
// The position never leaves the span between the outermost lanes.
func (a Avoider) Move(agent *Agent) {
	x := core.Approach(agent.X, a.lanes.X(agent.Lane), a.step)
	agent.X = core.ClampF(x, a.lanes.X(0), a.lanes.X(a.lanes.Len()-1))
}

// ConvergenceTicks is the worst-case number of ticks the agent needs to
// reach any lane from any other.
func (a Avoider) ConvergenceTicks() int {
	return int(math.Ceil(a.lanes.Span() / a.step))
}

package matatu

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/matatu/internal/config"
)

func newTestAvoider() (Avoider, LaneTable) {
	cfg := config.DefaultMatatuConfig()
	lanes := NewLaneTable(cfg.Lanes)
	return NewAvoider(lanes, &cfg), lanes
}

func TestNearestLane(t *testing.T) {
	tests := []struct {
		name    string
		current int
		safe    []int
		want    int
	}{
		{"tie goes to lower index", 1, []int{0, 2, 3}, 0},
		{"closest wins", 1, []int{2, 3}, 2},
		{"current lane if safe", 2, []int{0, 2, 3}, 2},
		{"far lane when only option", 0, []int{3}, 3},
		{"no safe lane keeps current", 1, nil, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearestLane(tc.current, tc.safe); got != tc.want {
				t.Errorf("NearestLane(%d, %v) = %d, expected %d", tc.current, tc.safe, got, tc.want)
			}
		})
	}
}

func TestDangerPredicate(t *testing.T) {
	a, _ := newTestAvoider()
	agent := Agent{X: 300, Y: 400, Lane: 1}

	tests := []struct {
		name string
		obs  Obstacle
		want bool
	}{
		{"ahead in lane", Obstacle{X: 300, Y: 300}, true},
		{"just inside proximity", Obstacle{X: 300, Y: 251}, true},
		{"at proximity boundary", Obstacle{X: 300, Y: 250}, false},
		{"far ahead", Obstacle{X: 300, Y: -120}, false},
		{"neighbouring lane", Obstacle{X: 500, Y: 400}, false},
		{"at tolerance boundary", Obstacle{X: 360, Y: 400}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.InDanger(agent, []Obstacle{tc.obs}); got != tc.want {
				t.Errorf("InDanger(%+v) = %v, expected %v", tc.obs, got, tc.want)
			}
		})
	}
}

func TestDangerUsesTargetLaneNotPosition(t *testing.T) {
	a, _ := newTestAvoider()
	// Agent is still drifting from lane 1 toward lane 2
	agent := Agent{X: 320, Y: 400, Lane: 2}

	if a.InDanger(agent, []Obstacle{{X: 300, Y: 350}}) {
		t.Error("an obstacle in the lane being left should not count")
	}
	if !a.InDanger(agent, []Obstacle{{X: 500, Y: 350}}) {
		t.Error("an obstacle in the target lane should count")
	}
}

func TestDecideScenarios(t *testing.T) {
	tests := []struct {
		name      string
		obstacles []Obstacle
		want      int
		changed   bool
	}{
		{
			name:      "no danger keeps lane",
			obstacles: []Obstacle{{X: 500, Y: 380}},
			want:      1,
		},
		{
			name:      "blocked lane moves to nearest, lower on tie",
			obstacles: []Obstacle{{X: 300, Y: 300}},
			want:      0,
			changed:   true,
		},
		{
			name:      "lane 0 also blocked picks lane 2",
			obstacles: []Obstacle{{X: 300, Y: 300}, {X: 100, Y: 450}},
			want:      2,
			changed:   true,
		},
		{
			name:      "only lane 3 free",
			obstacles: []Obstacle{{X: 100, Y: 400}, {X: 300, Y: 400}, {X: 500, Y: 400}},
			want:      3,
			changed:   true,
		},
		{
			name:      "every lane blocked fails open",
			obstacles: []Obstacle{{X: 100, Y: 400}, {X: 300, Y: 400}, {X: 500, Y: 400}, {X: 700, Y: 400}},
			want:      1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := newTestAvoider()
			agent := Agent{X: 300, Y: 400, Lane: 1}

			from, changed := a.Decide(&agent, tc.obstacles)

			if from != 1 {
				t.Errorf("from = %d, expected 1", from)
			}
			if agent.Lane != tc.want || changed != tc.changed {
				t.Errorf("Decide() lane=%d changed=%v, expected lane=%d changed=%v", agent.Lane, changed, tc.want, tc.changed)
			}
			if agent.X != 300 {
				t.Error("Decide() must not move the agent")
			}
		})
	}
}

func TestChosenLaneIsSafe(t *testing.T) {
	a, lanes := newTestAvoider()
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 2000; trial++ {
		obstacles := make([]Obstacle, rng.Intn(6))
		for i := range obstacles {
			obstacles[i] = Obstacle{
				X: lanes.X(rng.Intn(lanes.Len())),
				Y: float64(rng.Intn(700) - 120),
			}
		}
		start := rng.Intn(lanes.Len())
		agent := Agent{X: lanes.X(start), Y: 400, Lane: start}
		danger := a.InDanger(agent, obstacles)
		safe := a.SafeLanes(agent.Y, obstacles)

		a.Decide(&agent, obstacles)

		if !lanes.Valid(agent.Lane) {
			t.Fatalf("trial %d: invalid lane %d", trial, agent.Lane)
		}
		if danger && len(safe) > 0 && a.InDanger(agent, obstacles) {
			t.Fatalf("trial %d: chose threatened lane %d although %v were safe (obstacles %v)", trial, agent.Lane, safe, obstacles)
		}
		if danger && len(safe) == 0 && agent.Lane != start {
			t.Fatalf("trial %d: no safe lane but target changed to %d", trial, agent.Lane)
		}
	}
}

func TestMoveConvergesWithoutOvershoot(t *testing.T) {
	a, lanes := newTestAvoider()
	agent := Agent{X: lanes.X(0), Y: 400, Lane: 3}
	target := lanes.X(3)

	limit := a.ConvergenceTicks()
	if limit != 120 {
		t.Fatalf("ConvergenceTicks() = %d, expected 120", limit)
	}

	prev := agent.X
	for tick := 1; tick <= limit; tick++ {
		a.Move(&agent)
		if agent.X > target {
			t.Fatalf("tick %d: overshot to %v", tick, agent.X)
		}
		if agent.X < prev {
			t.Fatalf("tick %d: moved away from target", tick)
		}
		prev = agent.X
	}
	if agent.X != target {
		t.Errorf("after %d ticks X = %v, expected %v", limit, agent.X, target)
	}

	// Stays put once there
	a.Move(&agent)
	if agent.X != target {
		t.Errorf("agent drifted off target to %v", agent.X)
	}
}

func TestMoveSnapsOffGridPosition(t *testing.T) {
	a, _ := newTestAvoider()
	agent := Agent{X: 297.5, Y: 400, Lane: 1}

	a.Move(&agent)
	if agent.X != 300 {
		t.Errorf("X = %v, expected snap to 300", agent.X)
	}
}

func TestMoveStaysWithinLaneSpan(t *testing.T) {
	a, lanes := newTestAvoider()

	tests := []struct {
		name string
		x    float64
		lane int
		want float64
	}{
		{"left of the road", 40, 0, lanes.X(0)},
		{"right of the road", 760, 3, lanes.X(3)},
		{"outside heading inward", 20, 2, lanes.X(0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agent := Agent{X: tc.x, Y: 400, Lane: tc.lane}
			a.Move(&agent)
			if agent.X != tc.want {
				t.Errorf("X = %v, expected %v", agent.X, tc.want)
			}
		})
	}
}

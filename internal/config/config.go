// Package config provides YAML-based configuration loading for the
// simulator. All values are fixed at startup.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// MatatuConfig contains all configuration for the traffic-dodging simulation.
type MatatuConfig struct {
	World     WorldConfig     `yaml:"world"`
	Lanes     []float64       `yaml:"lanes"` // Lane x coordinates, left to right
	Agent     AgentConfig     `yaml:"agent"`
	Obstacles SpawnConfig     `yaml:"obstacles"`
	Crossings SpawnConfig     `yaml:"crossings"`
	Avoidance AvoidanceConfig `yaml:"avoidance"`
	Pause     PauseConfig     `yaml:"pause"`
}

// WorldConfig defines the simulated world and its clock.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`      // Visible height; entities at or past it are evicted
	RoadMargin float64 `yaml:"road_margin"` // Verge on each side of the road, rendering only
	TickRate   int     `yaml:"tick_rate"`   // Ticks per simulated second
	ScrollStep float64 `yaml:"scroll_step"` // Units every entity moves down per tick
}

// AgentConfig defines the controlled vehicle.
type AgentConfig struct {
	StartLane int     `yaml:"start_lane"`
	Y         float64 `yaml:"y"`    // Fixed vertical position
	Step      float64 `yaml:"step"` // Horizontal units moved per tick
}

// SpawnConfig defines a timed entity feed.
type SpawnConfig struct {
	EverySeconds float64 `yaml:"every_seconds"`
	SpawnY       float64 `yaml:"spawn_y"`
}

// AvoidanceConfig defines the danger predicate.
type AvoidanceConfig struct {
	Proximity     float64 `yaml:"proximity"`      // Vertical distance below which an obstacle is near
	LaneTolerance float64 `yaml:"lane_tolerance"` // Horizontal distance below which an obstacle is in a lane
}

// PauseConfig defines crossing detection.
// The band is (agent.y - band_behind, agent.y + band_ahead), both ends exclusive.
type PauseConfig struct {
	BandBehind float64 `yaml:"band_behind"`
	BandAhead  float64 `yaml:"band_ahead"`
	GraceTicks int     `yaml:"grace_ticks"`
}

// EveryTicks converts the spawn interval to a tick count at the given rate.
// Never returns less than one tick.
func (s SpawnConfig) EveryTicks(tickRate int) int {
	return SecondsToTicks(s.EverySeconds, tickRate)
}

// SecondsToTicks converts simulated seconds to a whole number of ticks (min 1).
func SecondsToTicks(seconds float64, tickRate int) int {
	n := int(math.Round(seconds * float64(tickRate)))
	if n < 1 {
		return 1
	}
	return n
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the configuration describes a runnable world.
func (c MatatuConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}

	if c.World.Width <= 0 || c.World.Height <= 0 {
		return invalid("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.World.TickRate <= 0 {
		return invalid("tick_rate must be positive, got %d", c.World.TickRate)
	}
	if c.World.ScrollStep <= 0 {
		return invalid("scroll_step must be positive, got %g", c.World.ScrollStep)
	}
	if len(c.Lanes) == 0 {
		return invalid("at least one lane is required")
	}
	if !sort.Float64sAreSorted(c.Lanes) {
		return invalid("lanes must be ordered left to right: %v", c.Lanes)
	}
	for i := 1; i < len(c.Lanes); i++ {
		if c.Lanes[i] == c.Lanes[i-1] {
			return invalid("duplicate lane coordinate %g", c.Lanes[i])
		}
	}
	if c.Agent.StartLane < 0 || c.Agent.StartLane >= len(c.Lanes) {
		return invalid("start_lane %d out of range [0, %d]", c.Agent.StartLane, len(c.Lanes)-1)
	}
	if c.Agent.Step <= 0 {
		return invalid("agent step must be positive, got %g", c.Agent.Step)
	}
	if c.Obstacles.EverySeconds <= 0 || c.Crossings.EverySeconds <= 0 {
		return invalid("spawn intervals must be positive")
	}
	if c.Avoidance.Proximity <= 0 || c.Avoidance.LaneTolerance <= 0 {
		return invalid("avoidance thresholds must be positive")
	}
	if c.Pause.BandBehind < 0 || c.Pause.BandAhead < 0 {
		return invalid("pause band must not be negative")
	}
	if c.Pause.GraceTicks < 0 {
		return invalid("grace_ticks must not be negative, got %d", c.Pause.GraceTicks)
	}
	return nil
}

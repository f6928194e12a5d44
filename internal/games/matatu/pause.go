package matatu

import "github.com/vovakirdan/matatu/internal/config"

// PauseState is the crossing pause machine's record.
// Active is set only while Paused and names the zone that caused it.
type PauseState struct {
	Paused      bool
	Active      ZoneID
	IgnoreTicks int // Grace countdown; detection is skipped while positive
}

// Pauser stops the world at crossings and resumes it on request.
type Pauser struct {
	state  PauseState
	behind float64
	ahead  float64
	grace  int
}

// NewPauser creates a running machine with no grace period pending.
func NewPauser(cfg *config.MatatuConfig) Pauser {
	return Pauser{
		behind: cfg.Pause.BandBehind,
		ahead:  cfg.Pause.BandAhead,
		grace:  cfg.Pause.GraceTicks,
	}
}

// State returns a copy of the machine's record.
func (p *Pauser) State() PauseState {
	return p.state
}

// Paused reports whether the world is frozen.
func (p *Pauser) Paused() bool {
	return p.state.Paused
}

// inBand reports whether a crossing at y lies in the detection band around agentY.
func (p *Pauser) inBand(y, agentY float64) bool {
	return agentY-p.behind < y && y < agentY+p.ahead
}

// Detect runs one tick of the running state. While the grace countdown is
// positive it only counts down. Otherwise it binds the first zone in the
// band, pauses, and returns it.
func (p *Pauser) Detect(agentY float64, zones []CrossingZone) (ZoneID, bool) {
	if p.state.Paused {
		panic("matatu: crossing detection while paused")
	}
	if p.state.IgnoreTicks > 0 {
		p.state.IgnoreTicks--
		return NoZone, false
	}
	if p.state.Active != NoZone {
		return NoZone, false
	}
	for _, z := range zones {
		if p.inBand(z.Y, agentY) {
			p.state.Paused = true
			p.state.Active = z.ID
			return z.ID, true
		}
	}
	return NoZone, false
}

// Resume unfreezes the world, removes the zone that caused the pause from
// crossings and starts the grace countdown. It reports the released zone
// and whether it was still present. Calling it while running does nothing.
func (p *Pauser) Resume(crossings *CrossingFeed) (id ZoneID, removed bool) {
	if !p.state.Paused {
		return NoZone, false
	}
	id = p.state.Active
	if id != NoZone {
		removed = crossings.Remove(id)
	}
	p.state = PauseState{IgnoreTicks: p.grace}
	return id, removed
}

package config

import (
	_ "embed"
)

//go:embed defaults/matatu.yaml
var defaultMatatuYAML []byte

// DefaultMatatuConfig returns the reference configuration.
func DefaultMatatuConfig() MatatuConfig {
	return MatatuConfig{
		World: WorldConfig{
			Width:      800,
			Height:     600,
			RoadMargin: 50,
			TickRate:   30,
			ScrollStep: 5,
		},
		Lanes: []float64{100, 300, 500, 700},
		Agent: AgentConfig{
			StartLane: 1,
			Y:         400,
			Step:      5,
		},
		Obstacles: SpawnConfig{
			EverySeconds: 1.5,
			SpawnY:       -120,
		},
		Crossings: SpawnConfig{
			EverySeconds: 10,
			SpawnY:       -20,
		},
		Avoidance: AvoidanceConfig{
			Proximity:     150,
			LaneTolerance: 60,
		},
		Pause: PauseConfig{
			BandBehind: 70,
			BandAhead:  100,
			GraceTicks: 60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMatatuYAML
}

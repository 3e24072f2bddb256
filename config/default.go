package config

import (
	"github.com/lixenwraith/traffic-grid/core"
	"github.com/lixenwraith/traffic-grid/engine"
)

// DefaultSeedProbability is the occupancy used by the random fill command
const DefaultSeedProbability = 0.25

// Default returns the 13x24 crossroads demo: two southbound feeders, three
// east-west lanes and two northbound feeders
func Default() *Config {
	colors := make([]string, len(core.DefaultPalette))
	for i, c := range core.DefaultPalette {
		colors[i] = c.Hex()
	}

	return &Config{
		Grid: GridConfig{
			Rows:     13,
			Columns:  24,
			Obstacle: core.RGBObstacle.Hex(),
		},
		Sim: SimConfig{
			SpawnProbability: engine.DefaultSpawnProbability,
			SeedProbability:  DefaultSeedProbability,
			LookAhead:        "speed",
			TickMs:           int(engine.DefaultTickInterval.Milliseconds()),
		},
		Palette: PaletteConfig{
			Selector: SelectorRoundRobin,
			Colors:   colors,
		},
		Lanes: []LaneConfig{
			{Axis: "vertical", Direction: "forward", Rows: [2]int{0, 3}, Columns: [2]int{4, 4}},
			{Axis: "vertical", Direction: "forward", Rows: [2]int{0, 3}, Columns: [2]int{14, 14}},
			{Axis: "horizontal", Direction: "backward", Rows: [2]int{4, 4}, Columns: [2]int{0, 23}},
			{Axis: "horizontal", Direction: "forward", Rows: [2]int{6, 6}, Columns: [2]int{0, 23}},
			{Axis: "horizontal", Direction: "backward", Rows: [2]int{8, 8}, Columns: [2]int{0, 23}},
			{Axis: "vertical", Direction: "backward", Rows: [2]int{9, 12}, Columns: [2]int{8, 8}},
			{Axis: "vertical", Direction: "backward", Rows: [2]int{9, 12}, Columns: [2]int{19, 19}},
		},
	}
}

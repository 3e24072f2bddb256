// Package config loads grid layouts and simulation settings from TOML
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/traffic-grid/core"
	"github.com/lixenwraith/traffic-grid/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk description of a simulation
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Sim     SimConfig     `toml:"sim"`
	Palette PaletteConfig `toml:"palette"`
	Lanes   []LaneConfig  `toml:"lane,omitempty"`
	Cars    []CarConfig   `toml:"car,omitempty"`
}

type GridConfig struct {
	Rows     int    `toml:"rows"`
	Columns  int    `toml:"columns"`
	Obstacle string `toml:"obstacle"`
}

type SimConfig struct {
	SpawnProbability float64 `toml:"spawn_probability"`
	SeedProbability  float64 `toml:"seed_probability"`
	LookAhead        string  `toml:"lookahead"`
	Seed             uint64  `toml:"seed"`
	TickMs           int     `toml:"tick_ms"`
}

type PaletteConfig struct {
	Selector string    `toml:"selector"`
	Colors   []string  `toml:"colors"`
	Weights  []float64 `toml:"weights,omitempty"`
}

// LaneConfig stamps a road over an inclusive rectangle; later lanes overwrite earlier ones
type LaneConfig struct {
	Axis      string `toml:"axis"`
	Direction string `toml:"direction"`
	Rows      [2]int `toml:"rows"`
	Columns   [2]int `toml:"columns"`
}

// CarConfig places an initial car, Color is optional
type CarConfig struct {
	Row    int    `toml:"row"`
	Column int    `toml:"column"`
	Color  string `toml:"color,omitempty"`
}

const (
	SelectorRoundRobin = "round_robin"
	SelectorWeighted   = "weighted"
)

// Load reads and validates a TOML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the default settings
// Lanes and cars come only from the document; unknown keys are rejected
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Lanes = nil
	cfg.Cars = nil

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every field without building a grid
func (c *Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Columns <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Grid.Rows, c.Grid.Columns)
	}
	if _, err := ParseColor(c.Grid.Obstacle); err != nil {
		return fmt.Errorf("%w: grid.obstacle: %v", ErrInvalidConfig, err)
	}

	if !validProbability(c.Sim.SpawnProbability) {
		return fmt.Errorf("%w: sim.spawn_probability %v outside [0,1]", ErrInvalidConfig, c.Sim.SpawnProbability)
	}
	if !validProbability(c.Sim.SeedProbability) {
		return fmt.Errorf("%w: sim.seed_probability %v outside [0,1]", ErrInvalidConfig, c.Sim.SeedProbability)
	}
	if _, err := engine.ParseLookAhead(c.Sim.LookAhead); err != nil {
		return fmt.Errorf("%w: sim.lookahead: %v", ErrInvalidConfig, err)
	}
	if c.Sim.TickMs < 0 {
		return fmt.Errorf("%w: sim.tick_ms %d", ErrInvalidConfig, c.Sim.TickMs)
	}

	if _, err := c.selector(); err != nil {
		return err
	}

	for i, l := range c.Lanes {
		if _, err := ParseAxis(l.Axis); err != nil {
			return fmt.Errorf("%w: lane %d: %v", ErrInvalidConfig, i, err)
		}
		if _, err := ParseDirection(l.Direction); err != nil {
			return fmt.Errorf("%w: lane %d: %v", ErrInvalidConfig, i, err)
		}
	}

	for i, car := range c.Cars {
		if car.Row < 0 || car.Row >= c.Grid.Rows || car.Column < 0 || car.Column >= c.Grid.Columns {
			return fmt.Errorf("%w: car %d at (%d,%d) outside grid", ErrInvalidConfig, i, car.Row, car.Column)
		}
		if car.Color != "" {
			if _, err := ParseColor(car.Color); err != nil {
				return fmt.Errorf("%w: car %d: %v", ErrInvalidConfig, i, err)
			}
		}
	}
	return nil
}

// TickInterval converts tick_ms, zero means the engine default
func (c *Config) TickInterval() time.Duration {
	if c.Sim.TickMs <= 0 {
		return engine.DefaultTickInterval
	}
	return time.Duration(c.Sim.TickMs) * time.Millisecond
}

// EngineConfig resolves the grid tunables
func (c *Config) EngineConfig() (engine.Config, error) {
	la, err := engine.ParseLookAhead(c.Sim.LookAhead)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	sel, err := c.selector()
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		SpawnProbability: c.Sim.SpawnProbability,
		LookAhead:        la,
		Selector:         sel,
		Seed:             c.Sim.Seed,
	}, nil
}

// Build creates the grid, stamps lanes in file order and places the initial cars
func (c *Config) Build() (*engine.Grid, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	ecfg, err := c.EngineConfig()
	if err != nil {
		return nil, err
	}

	obstacle, _ := ParseColor(c.Grid.Obstacle)
	g, err := engine.New(c.Grid.Rows, c.Grid.Columns, core.NewObstacle(obstacle), ecfg)
	if err != nil {
		return nil, err
	}

	for _, l := range c.Lanes {
		axis, _ := ParseAxis(l.Axis)
		dir, _ := ParseDirection(l.Direction)
		g.FillRegion(core.NewRoad(axis, dir),
			engine.Span{From: l.Rows[0], To: l.Rows[1]},
			engine.Span{From: l.Columns[0], To: l.Columns[1]},
		)
	}

	for _, car := range c.Cars {
		if car.Color == "" {
			g.InsertCar(car.Row, car.Column)
			continue
		}
		color, _ := ParseColor(car.Color)
		g.InsertVehicle(car.Row, car.Column, core.Vehicle{ID: g.NewVehicleID(), Color: color})
	}
	return g, nil
}

func (c *Config) selector() (engine.Selector, error) {
	if len(c.Palette.Colors) == 0 {
		return nil, fmt.Errorf("%w: palette.colors is empty", ErrInvalidConfig)
	}
	colors := make([]core.RGB, len(c.Palette.Colors))
	for i, s := range c.Palette.Colors {
		rgb, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("%w: palette.colors[%d]: %v", ErrInvalidConfig, i, err)
		}
		colors[i] = rgb
	}

	switch c.Palette.Selector {
	case "", SelectorRoundRobin:
		return engine.NewRoundRobin(colors), nil
	case SelectorWeighted:
		w, err := engine.NewWeightedRandom(colors, c.Palette.Weights)
		if err != nil {
			return nil, fmt.Errorf("%w: palette: %v", ErrInvalidConfig, err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: palette.selector %q", ErrInvalidConfig, c.Palette.Selector)
	}
}

// ParseColor accepts #rrggbb or #rgb
func ParseColor(s string) (core.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return core.RGB{}, err
	}
	r, g, b := c.RGB255()
	return core.RGB{R: r, G: g, B: b}, nil
}

func ParseAxis(s string) (core.Axis, error) {
	switch strings.ToLower(s) {
	case "horizontal", "h":
		return core.Horizontal, nil
	case "vertical", "v":
		return core.Vertical, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

func ParseDirection(s string) (core.Direction, error) {
	switch strings.ToLower(s) {
	case "forward", "+1", "1":
		return core.Forward, nil
	case "backward", "-1":
		return core.Backward, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func validProbability(p float64) bool {
	return p >= 0 && p <= 1
}

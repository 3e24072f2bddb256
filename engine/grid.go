package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/lixenwraith/traffic-grid/core"
)

// DefaultSpawnProbability is the entrance spawn chance per empty entrance cell per tick
const DefaultSpawnProbability = 0.25

var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// Config holds the tunables of a grid
// Zero SpawnProbability disables entrance spawning; nil LookAhead and Selector take the defaults
type Config struct {
	SpawnProbability float64
	LookAhead        LookAhead
	Selector         Selector
	Seed             uint64
}

// DefaultConfig returns the speed-sensitive rule with round-robin colors
func DefaultConfig() Config {
	return Config{
		SpawnProbability: DefaultSpawnProbability,
		LookAhead:        SpeedLookAhead{Max: DefaultSpeed},
		Selector:         NewRoundRobin(core.DefaultPalette),
	}
}

// Span is an inclusive index range
type Span struct {
	From, To int
}

// Grid is a fixed-size row-major lattice of cells plus the rules that advance it
// Not safe for concurrent use; Simulation serializes access
type Grid struct {
	rows, cols int
	cells      []core.Cell

	src       *Source
	selector  Selector
	lookAhead LookAhead
	spawnProb float64

	ticks uint64
}

// New creates a grid with every cell set to an independent copy of fill
func New(rows, cols int, fill core.Cell, cfg Config) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]core.Cell, rows*cols),
		src:   NewSource(cfg.Seed),
	}
	g.SetSpawnProbability(cfg.SpawnProbability)
	g.SetLookAhead(cfg.LookAhead)
	g.SetSelector(cfg.Selector)

	for i := range g.cells {
		g.cells[i] = fill.Clone(false)
	}
	return g, nil
}

func (g *Grid) Rows() int    { return g.rows }
func (g *Grid) Columns() int { return g.cols }

// Ticks returns the number of completed Advance calls
func (g *Grid) Ticks() uint64 { return g.ticks }

// Seed returns the seed of the grid's random stream
func (g *Grid) Seed() uint64 { return g.src.Seed() }

func (g *Grid) SpawnProbability() float64 { return g.spawnProb }
func (g *Grid) LookAhead() LookAhead      { return g.lookAhead }

// SetSpawnProbability clamps p to [0, 1]; NaN disables spawning
func (g *Grid) SetSpawnProbability(p float64) {
	g.spawnProb = clampProbability(p)
}

// SetLookAhead swaps the movement rule, nil restores the speed-sensitive default
func (g *Grid) SetLookAhead(la LookAhead) {
	if la == nil {
		la = SpeedLookAhead{Max: DefaultSpeed}
	}
	g.lookAhead = la
}

// SetSelector swaps the spawn color strategy, nil restores round-robin over the default palette
func (g *Grid) SetSelector(s Selector) {
	if s == nil {
		s = NewRoundRobin(core.DefaultPalette)
	}
	g.selector = s
}

// Contains reports whether (row, col) lies inside the grid
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// CellAt returns a copy of the cell at (row, col)
func (g *Grid) CellAt(row, col int) (core.Cell, error) {
	if !g.Contains(row, col) {
		return core.Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d", core.ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return g.cells[g.index(row, col)], nil
}

// SetCell replaces the cell at (row, col) with an independent copy of c
func (g *Grid) SetCell(row, col int, c core.Cell) error {
	if !g.Contains(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", core.ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	g.cells[g.index(row, col)] = c.Clone(true)
	return nil
}

// FillRegion stamps empty copies of tmpl over the inclusive rectangle, clipped to the grid
func (g *Grid) FillRegion(tmpl core.Cell, rows, cols Span) {
	r0, r1 := clipSpan(rows, g.rows)
	c0, c1 := clipSpan(cols, g.cols)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			g.cells[g.index(r, c)] = tmpl.Clone(false)
		}
	}
}

// Reset replaces every cell with an empty copy of fill
func (g *Grid) Reset(fill core.Cell) {
	for i := range g.cells {
		g.cells[i] = fill.Clone(false)
	}
}

// InsertCar spawns a car with a selector-chosen color and a fresh id
// Returns false without side effects unless the target is an empty road
func (g *Grid) InsertCar(row, col int) bool {
	if !g.canSpawn(row, col) {
		return false
	}
	v := core.Vehicle{
		Color: g.selector.Next(g.src),
		ID:    g.src.VehicleID(),
	}
	return g.cells[g.index(row, col)].Occupy(v) == nil
}

// NewVehicleID draws an id from the grid's random stream
func (g *Grid) NewVehicleID() uuid.UUID {
	return g.src.VehicleID()
}

// InsertVehicle spawns a car carrying v, same preconditions as InsertCar
func (g *Grid) InsertVehicle(row, col int, v core.Vehicle) bool {
	if !g.canSpawn(row, col) {
		return false
	}
	return g.cells[g.index(row, col)].Occupy(v) == nil
}

func (g *Grid) canSpawn(row, col int) bool {
	if !g.Contains(row, col) {
		return false
	}
	c := g.cells[g.index(row, col)]
	return c.IsRoad() && !c.IsOccupied()
}

// RemoveCar empties a road cell; no-op elsewhere
func (g *Grid) RemoveCar(row, col int) {
	if !g.Contains(row, col) {
		return
	}
	g.cells[g.index(row, col)].Vacate()
}

// ClearCars empties every road
func (g *Grid) ClearCars() {
	for i := range g.cells {
		g.cells[i].Vacate()
	}
}

// SeedRandomly re-rolls every road: occupied with probability p, empty otherwise
func (g *Grid) SeedRandomly(p float64) {
	p = clampProbability(p)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if !g.cells[g.index(r, c)].IsRoad() {
				continue
			}
			if g.src.Bernoulli(p) {
				g.InsertCar(r, c)
			} else {
				g.RemoveCar(r, c)
			}
		}
	}
}

// IsEntrance reports whether (row, col) is a road on the grid edge pointing inward
func (g *Grid) IsEntrance(row, col int) bool {
	if !g.Contains(row, col) {
		return false
	}
	c := g.cells[g.index(row, col)]
	if !c.IsRoad() {
		return false
	}

	pos, last := col, g.cols-1
	if c.Axis() == core.Vertical {
		pos, last = row, g.rows-1
	}
	if c.Direction() == core.Forward {
		return pos == 0
	}
	return pos == last
}

// CarCount returns the number of occupied cells
func (g *Grid) CarCount() int {
	_, cars := g.Counts()
	return cars
}

// Counts returns the number of road cells and occupied road cells
func (g *Grid) Counts() (roads, cars int) {
	for i := range g.cells {
		if g.cells[i].IsRoad() {
			roads++
			if g.cells[i].IsOccupied() {
				cars++
			}
		}
	}
	return roads, cars
}

// Each visits every cell in raster order
func (g *Grid) Each(fn func(row, col int, c core.Cell)) {
	for r := 0; r < g.rows; r++ {
		base := r * g.cols
		for c := 0; c < g.cols; c++ {
			fn(r, c, g.cells[base+c])
		}
	}
}

func clipSpan(s Span, n int) (int, int) {
	lo, hi := s.From, s.To
	if lo > hi {
		lo, hi = hi, lo
	}
	return max(lo, 0), min(hi, n-1)
}

func clampProbability(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

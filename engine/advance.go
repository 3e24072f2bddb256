package engine

import "github.com/lixenwraith/traffic-grid/core"

// TickReport summarizes one Advance call
// Cars equals the pre-tick count minus Exited plus Spawned
type TickReport struct {
	Tick    uint64
	Moved   int // cars displaced inside the grid
	Blocked int // cars that stayed in place
	Exited  int // cars that left past the edge
	Spawned int // cars created at entrances
	Cars    int // cars on the grid after the tick
}

// Advance runs one tick: every car present before the tick is evaluated exactly once
//
// Decisions read a pre-tick occupancy snapshot in which obstacles count as occupied.
// Commits happen in raster order; a destination claimed earlier in the same pass
// (two lanes merging into one cell) leaves the later car in place, and so does
// a car committed earlier onto a cell the later car would pass over.
// The moved mask keeps a car shifted forward in the scan from being evaluated again.
func (g *Grid) Advance() TickReport {
	n := len(g.cells)
	blocked := make([]bool, n)
	moved := make([]bool, n)
	for i := range g.cells {
		blocked[i] = !g.cells[i].IsRoad() || g.cells[i].IsOccupied()
	}

	var report TickReport
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			i := g.index(r, c)
			cell := g.cells[i]
			if !cell.IsRoad() {
				continue
			}

			if cell.IsOccupied() {
				if !moved[i] {
					g.moveCar(r, c, blocked, moved, &report)
				}
				continue
			}

			if g.IsEntrance(r, c) && g.src.Bernoulli(g.spawnProb) && g.InsertCar(r, c) {
				moved[i] = true
				report.Spawned++
			}
		}
	}

	g.ticks++
	report.Tick = g.ticks
	report.Cars = g.CarCount()
	return report
}

func (g *Grid) moveCar(row, col int, blocked, moved []bool, report *TickReport) {
	from := g.index(row, col)
	axis := g.cells[from].Axis()
	step := g.cells[from].Direction().Step()

	d := g.lookAhead.Displacement(func(n int) Probe {
		r, c := offset(row, col, axis, step*n)
		if !g.Contains(r, c) {
			return ProbeOffGrid
		}
		j := g.index(r, c)
		if blocked[j] {
			return ProbeBlocked
		}
		if g.cells[j].Axis() != axis {
			return ProbeCrossing
		}
		return ProbeFree
	})
	// A car committed earlier in this pass may now sit on the path
	for k := 1; k < d && d > 0; k++ {
		r, c := offset(row, col, axis, step*k)
		if g.Contains(r, c) && g.cells[g.index(r, c)].IsOccupied() {
			d = 0
		}
	}
	if d <= 0 {
		report.Blocked++
		return
	}

	r, c := offset(row, col, axis, step*d)
	if !g.Contains(r, c) {
		g.cells[from].Vacate()
		report.Exited++
		return
	}

	to := g.index(r, c)
	v, _ := g.cells[from].Vehicle()
	if err := g.cells[to].Occupy(v); err != nil {
		report.Blocked++
		return
	}
	g.cells[from].Vacate()
	moved[to] = true
	report.Moved++
}

// offset shifts (row, col) by delta cells along axis
func offset(row, col int, axis core.Axis, delta int) (int, int) {
	if axis == core.Vertical {
		return row + delta, col
	}
	return row, col + delta
}

package engine

import (
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/lixenwraith/traffic-grid/core"
)

var rules = []struct {
	name string
	la   LookAhead
}{
	{"simple", SimpleLookAhead{}},
	{"speed", SpeedLookAhead{Max: 2}},
}

func TestAdvanceSimpleMovesOneCell(t *testing.T) {
	g := newLane(t, 5, core.Forward, SimpleLookAhead{})
	mustInsert(t, g, 0, 0)

	r := g.Advance()

	if got := occupied(g); !slices.Equal(got, []int{1}) {
		t.Errorf("Occupied after tick = %v, want [1]", got)
	}
	if r.Moved != 1 || r.Cars != 1 || r.Exited != 0 || r.Spawned != 0 {
		t.Errorf("Unexpected report %+v", r)
	}
}

func TestAdvanceSpeedMovesTwoCells(t *testing.T) {
	g := newLane(t, 5, core.Forward, SpeedLookAhead{Max: 2})
	mustInsert(t, g, 0, 0)

	g.Advance()

	if got := occupied(g); !slices.Equal(got, []int{2}) {
		t.Errorf("Occupied after tick = %v, want [2]", got)
	}
}

func TestAdvanceBackwardLane(t *testing.T) {
	g := newLane(t, 6, core.Backward, SpeedLookAhead{Max: 2})
	mustInsert(t, g, 0, 5)

	g.Advance()
	if got := occupied(g); !slices.Equal(got, []int{3}) {
		t.Errorf("After tick 1 = %v, want [3]", got)
	}
	g.Advance()
	if got := occupied(g); !slices.Equal(got, []int{1}) {
		t.Errorf("After tick 2 = %v, want [1]", got)
	}
	// Column 0 reached, edge beyond it: park on the edge first
	g.Advance()
	if got := occupied(g); !slices.Equal(got, []int{0}) {
		t.Errorf("After tick 3 = %v, want [0]", got)
	}
	r := g.Advance()
	if r.Exited != 1 || g.CarCount() != 0 {
		t.Errorf("Expected exit on tick 4, report %+v", r)
	}
}

func TestAdvanceExitAtEdge(t *testing.T) {
	for _, rule := range rules {
		t.Run(rule.name, func(t *testing.T) {
			g := newLane(t, 10, core.Forward, rule.la)
			mustInsert(t, g, 0, 8)

			g.Advance()
			if got := occupied(g); !slices.Equal(got, []int{9}) {
				t.Fatalf("After tick 1 = %v, want [9]", got)
			}

			r := g.Advance()
			if g.CarCount() != 0 {
				t.Errorf("Expected empty grid after exit, got %v", occupied(g))
			}
			if r.Exited != 1 || r.Cars != 0 {
				t.Errorf("Unexpected report %+v", r)
			}
		})
	}
}

func TestAdvanceBlockedBehindObstacle(t *testing.T) {
	for _, rule := range rules {
		t.Run(rule.name, func(t *testing.T) {
			g := newLane(t, 5, core.Forward, rule.la)
			_ = g.SetCell(0, 3, testObstacle)
			mustInsert(t, g, 0, 1)
			mustInsert(t, g, 0, 2)

			before := cellsOf(g)
			r := g.Advance()

			if got := occupied(g); !slices.Equal(got, []int{1, 2}) {
				t.Errorf("Occupied = %v, want [1 2]", got)
			}
			if !slices.Equal(before, cellsOf(g)) {
				t.Error("Blocked cars changed payload or position")
			}
			if r.Blocked != 2 || r.Moved != 0 {
				t.Errorf("Unexpected report %+v", r)
			}
		})
	}
}

func TestAdvanceFollowerUsesPreTickOccupancy(t *testing.T) {
	// Backward lane: the leader is scanned first and moves away, the follower
	// must still treat the leader's old cell as taken
	g := newLane(t, 8, core.Backward, SpeedLookAhead{Max: 2})
	mustInsert(t, g, 0, 3)
	mustInsert(t, g, 0, 5)

	g.Advance()

	if got := occupied(g); !slices.Equal(got, []int{1, 4}) {
		t.Errorf("Occupied = %v, want [1 4]", got)
	}
}

func TestAdvanceSingleMovePerTick(t *testing.T) {
	// Forward cars land on cells the scan has not reached yet
	g := newLane(t, 12, core.Forward, SpeedLookAhead{Max: 2})
	mustInsert(t, g, 0, 0)
	mustInsert(t, g, 0, 4)

	idsBefore := vehicleIDs(g)
	r := g.Advance()

	if got := occupied(g); !slices.Equal(got, []int{2, 6}) {
		t.Errorf("Occupied = %v, want [2 6]", got)
	}
	if r.Moved != 2 {
		t.Errorf("Moved = %d, want 2", r.Moved)
	}
	if !slices.Equal(idsBefore, vehicleIDs(g)) {
		t.Error("Vehicle identities changed during move")
	}
}

func TestAdvanceSingleMoveVertical(t *testing.T) {
	g, _ := New(10, 1, testObstacle, Config{LookAhead: SimpleLookAhead{}})
	g.FillRegion(core.NewRoad(core.Vertical, core.Forward), Span{0, 9}, Span{0, 0})
	mustInsert(t, g, 3, 0)

	g.Advance()

	if got := occupied(g); !slices.Equal(got, []int{4}) {
		t.Errorf("Occupied = %v, want [4]", got)
	}
}

// crossing builds a 3x5 grid: row 1 is a horizontal forward lane, column 2 a
// vertical forward lane, the crossing cell (1,2) belongs to the vertical lane
func crossing(t *testing.T, la LookAhead) *Grid {
	t.Helper()
	g, _ := New(3, 5, testObstacle, Config{LookAhead: la})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Forward), Span{1, 1}, Span{0, 4})
	g.FillRegion(core.NewRoad(core.Vertical, core.Forward), Span{0, 2}, Span{2, 2})
	return g
}

func TestAdvanceIntersectionCap(t *testing.T) {
	g := crossing(t, SpeedLookAhead{Max: 2})
	mustInsert(t, g, 1, 1)

	g.Advance()

	// (1,3) is free but the car must stop on the crossing cell
	if got := occupied(g); !slices.Equal(got, []int{1*5 + 2}) {
		t.Errorf("Occupied = %v, want crossing cell [7]", got)
	}

	// Now on a vertical road it continues downward
	g.Advance()
	if got := occupied(g); !slices.Equal(got, []int{2*5 + 2}) {
		t.Errorf("Occupied = %v, want [12]", got)
	}
}

func TestAdvanceIntersectionCapVerticalIntoHorizontal(t *testing.T) {
	g, _ := New(5, 3, testObstacle, Config{LookAhead: SpeedLookAhead{Max: 2}})
	g.FillRegion(core.NewRoad(core.Vertical, core.Forward), Span{0, 4}, Span{1, 1})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Forward), Span{2, 2}, Span{0, 2})
	mustInsert(t, g, 1, 1)

	g.Advance()

	if got := occupied(g); !slices.Equal(got, []int{2*3 + 1}) {
		t.Errorf("Occupied = %v, want [7]", got)
	}
}

func TestAdvanceMergeConflict(t *testing.T) {
	// Vertical car reaches the crossing first in raster order, horizontal car yields
	g, _ := New(3, 3, testObstacle, Config{LookAhead: SpeedLookAhead{Max: 2}})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Forward), Span{1, 1}, Span{0, 2})
	g.FillRegion(core.NewRoad(core.Vertical, core.Forward), Span{0, 1}, Span{1, 1})
	mustInsert(t, g, 0, 1)
	mustInsert(t, g, 1, 0)

	r := g.Advance()

	if got := occupied(g); !slices.Equal(got, []int{3, 4}) {
		t.Errorf("Occupied = %v, want [3 4]", got)
	}
	if r.Moved != 1 || r.Blocked != 1 {
		t.Errorf("Unexpected report %+v", r)
	}
}

func TestAdvanceNoPassThroughMergedCar(t *testing.T) {
	// The vertical car drops into (1,2) first; the eastbound car behind it may not jump over
	g, _ := New(2, 5, testObstacle, Config{LookAhead: SpeedLookAhead{Max: 2}})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Forward), Span{1, 1}, Span{0, 4})
	g.FillRegion(core.NewRoad(core.Vertical, core.Forward), Span{0, 0}, Span{2, 2})
	mustInsert(t, g, 0, 2)
	mustInsert(t, g, 1, 1)

	r := g.Advance()

	if got := occupied(g); !slices.Equal(got, []int{1*5 + 1, 1*5 + 2}) {
		t.Errorf("Occupied = %v, want [6 7]", got)
	}
	if r.Moved != 1 || r.Blocked != 1 {
		t.Errorf("Unexpected report %+v", r)
	}
}

func TestAdvanceBoundaryOnlySpawn(t *testing.T) {
	g, _ := New(6, 10, testObstacle, Config{SpawnProbability: 1})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Forward), Span{0, 0}, Span{0, 9})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Backward), Span{1, 1}, Span{0, 9})
	g.FillRegion(core.NewRoad(core.Vertical, core.Forward), Span{2, 5}, Span{3, 3})
	g.FillRegion(core.NewRoad(core.Vertical, core.Backward), Span{2, 5}, Span{6, 6})

	r := g.Advance()

	// Row 0 col 0, row 1 col 9, row 5 col 6. The vertical forward lane starts at
	// row 2 so it has no entrance
	want := []int{0, 19, 56}
	if got := occupied(g); !slices.Equal(got, want) {
		t.Errorf("Occupied = %v, want %v", got, want)
	}
	if r.Spawned != 3 {
		t.Errorf("Spawned = %d, want 3", r.Spawned)
	}
}

func TestAdvanceSpawnedCarDoesNotMoveSameTick(t *testing.T) {
	g, _ := New(1, 5, testObstacle, Config{SpawnProbability: 1})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Backward), Span{0, 0}, Span{0, 4})

	g.Advance()
	if got := occupied(g); !slices.Equal(got, []int{4}) {
		t.Errorf("Occupied = %v, want [4]", got)
	}
}

func TestAdvanceNoSpawnWhenDisabled(t *testing.T) {
	g := newLane(t, 5, core.Forward, nil)
	for i := 0; i < 50; i++ {
		g.Advance()
	}
	if g.CarCount() != 0 {
		t.Errorf("Spawned %d cars with zero probability", g.CarCount())
	}
}

// demoGrid mirrors the default layout with several crossings
func demoGrid(t *testing.T, seed uint64, la LookAhead) *Grid {
	t.Helper()
	g, err := New(13, 24, testObstacle, Config{SpawnProbability: 0.4, LookAhead: la, Seed: seed})
	if err != nil {
		t.Fatal(err)
	}
	down := core.NewRoad(core.Vertical, core.Forward)
	up := core.NewRoad(core.Vertical, core.Backward)
	g.FillRegion(down, Span{0, 3}, Span{4, 4})
	g.FillRegion(down, Span{0, 3}, Span{14, 14})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Backward), Span{4, 4}, Span{0, 23})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Forward), Span{6, 6}, Span{0, 23})
	g.FillRegion(core.NewRoad(core.Horizontal, core.Backward), Span{8, 8}, Span{0, 23})
	g.FillRegion(up, Span{9, 12}, Span{8, 8})
	g.FillRegion(up, Span{9, 12}, Span{19, 19})
	return g
}

func TestAdvanceConservationAndUniqueness(t *testing.T) {
	for _, rule := range rules {
		t.Run(rule.name, func(t *testing.T) {
			g := demoGrid(t, 99, rule.la)
			g.SeedRandomly(0.3)

			for tick := 0; tick < 200; tick++ {
				before := g.CarCount()
				r := g.Advance()

				if r.Cars != before-r.Exited+r.Spawned {
					t.Fatalf("tick %d: cars %d != %d - %d + %d", tick, r.Cars, before, r.Exited, r.Spawned)
				}
				if r.Moved+r.Blocked+r.Exited != before {
					t.Fatalf("tick %d: evaluated %d cars, had %d", tick, r.Moved+r.Blocked+r.Exited, before)
				}

				ids := vehicleIDs(g)
				seen := make(map[uuid.UUID]bool, len(ids))
				for _, id := range ids {
					if seen[id] {
						t.Fatalf("tick %d: vehicle %s on two cells", tick, id)
					}
					seen[id] = true
				}
			}
		})
	}
}

func TestAdvanceSpeedNeverExceedsTwoCells(t *testing.T) {
	g := demoGrid(t, 5, SpeedLookAhead{Max: 2})
	g.SeedRandomly(0.3)

	for tick := 0; tick < 100; tick++ {
		pos := positions(g)
		g.Advance()
		for id, after := range positions(g) {
			prev, ok := pos[id]
			if !ok {
				continue
			}
			dist := abs(after[0]-prev[0]) + abs(after[1]-prev[1])
			if dist > 2 {
				t.Fatalf("tick %d: vehicle moved %d cells", tick, dist)
			}
		}
	}
}

func TestAdvanceReproducible(t *testing.T) {
	a := demoGrid(t, 1234, nil)
	b := demoGrid(t, 1234, nil)
	a.SeedRandomly(0.25)
	b.SeedRandomly(0.25)

	for i := 0; i < 50; i++ {
		ra, rb := a.Advance(), b.Advance()
		if ra != rb {
			t.Fatalf("tick %d: reports differ %+v vs %+v", i, ra, rb)
		}
	}
	if !slices.Equal(cellsOf(a), cellsOf(b)) {
		t.Error("Same seed produced different grids")
	}

	c := demoGrid(t, 4321, nil)
	c.SeedRandomly(0.25)
	for i := 0; i < 50; i++ {
		c.Advance()
	}
	if slices.Equal(cellsOf(a), cellsOf(c)) {
		t.Error("Different seeds produced identical grids")
	}
}

func TestAdvanceTickCounter(t *testing.T) {
	g := newLane(t, 3, core.Forward, nil)
	for i := 1; i <= 3; i++ {
		if r := g.Advance(); r.Tick != uint64(i) {
			t.Errorf("Tick = %d, want %d", r.Tick, i)
		}
	}
	if g.Ticks() != 3 {
		t.Errorf("Ticks() = %d, want 3", g.Ticks())
	}
}

func cellsOf(g *Grid) []core.Cell {
	var out []core.Cell
	g.Each(func(_, _ int, c core.Cell) { out = append(out, c) })
	return out
}

func vehicleIDs(g *Grid) []uuid.UUID {
	var out []uuid.UUID
	g.Each(func(_, _ int, c core.Cell) {
		if v, ok := c.Vehicle(); ok {
			out = append(out, v.ID)
		}
	})
	return out
}

func positions(g *Grid) map[uuid.UUID][2]int {
	out := make(map[uuid.UUID][2]int)
	g.Each(func(r, c int, cell core.Cell) {
		if v, ok := cell.Vehicle(); ok {
			out[v.ID] = [2]int{r, c}
		}
	})
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package engine

import "fmt"

// Probe classifies the cell n steps ahead of a car, read from pre-tick occupancy
type Probe uint8

const (
	ProbeOffGrid  Probe = iota // past the grid edge
	ProbeBlocked               // occupied road or obstacle
	ProbeFree                  // empty road on the car's axis
	ProbeCrossing              // empty road on the other axis
)

// LookAhead decides how many cells a car advances this tick
// probe(n) describes the cell n steps ahead, n >= 1
type LookAhead interface {
	Displacement(probe func(n int) Probe) int
	Name() string
}

// SimpleLookAhead always moves exactly one cell when the next cell is free
type SimpleLookAhead struct{}

func (SimpleLookAhead) Displacement(probe func(n int) Probe) int {
	if probe(1) == ProbeBlocked {
		return 0
	}
	return 1
}

func (SimpleLookAhead) Name() string { return "simple" }

// SpeedLookAhead scans up to Max cells and takes every free one in a row
// Entering a cell of the other axis ends the scan, so intersections are crossed one cell at a time
// An edge met after at least one free cell parks the car on the last in-grid cell; it exits next tick
type SpeedLookAhead struct {
	Max int
}

// DefaultSpeed is the scan depth of the speed-sensitive rule
const DefaultSpeed = 2

func (s SpeedLookAhead) Displacement(probe func(n int) Probe) int {
	limit := s.Max
	if limit <= 0 {
		limit = DefaultSpeed
	}

	moves := 0
	for n := 1; n <= limit; n++ {
		switch probe(n) {
		case ProbeOffGrid:
			if moves == 0 {
				return 1
			}
			return moves
		case ProbeBlocked:
			return moves
		case ProbeCrossing:
			return n
		case ProbeFree:
			moves = n
		}
	}
	return moves
}

func (s SpeedLookAhead) Name() string { return "speed" }

// ParseLookAhead resolves a rule name used by flags and config files
func ParseLookAhead(name string) (LookAhead, error) {
	switch name {
	case "simple":
		return SimpleLookAhead{}, nil
	case "", "speed":
		return SpeedLookAhead{Max: DefaultSpeed}, nil
	default:
		return nil, fmt.Errorf("unknown look-ahead rule %q", name)
	}
}

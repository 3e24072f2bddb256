package core

import "fmt"

// Kind is the cell variant tag
type Kind uint8

const (
	KindObstacle Kind = iota
	KindRoad
)

// Axis is the travel axis of a road cell
type Axis uint8

const (
	Horizontal Axis = iota // moves along columns
	Vertical               // moves along rows
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("axis(%d)", a)
	}
}

// Direction is the index step along a road's axis
type Direction int8

const (
	Forward  Direction = 1  // right or down
	Backward Direction = -1 // left or up
)

// Step returns the signed index delta for one cell of travel
func (d Direction) Step() int {
	if d == Backward {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Cell is one grid slot: an obstacle or a directional road that may hold a vehicle
// Fields are unexported so occupancy and payload can only change together
type Cell struct {
	kind      Kind
	axis      Axis
	direction Direction
	color     RGB
	occupied  bool
	vehicle   Vehicle
}

// NewObstacle creates a non-traversable cell with the given color
func NewObstacle(color RGB) Cell {
	return Cell{kind: KindObstacle, color: color}
}

// NewRoad creates an empty road cell
func NewRoad(axis Axis, dir Direction) Cell {
	if dir != Backward {
		dir = Forward
	}
	return Cell{kind: KindRoad, axis: axis, direction: dir, color: RGBRoad}
}

func (c Cell) Kind() Kind           { return c.kind }
func (c Cell) IsRoad() bool         { return c.kind == KindRoad }
func (c Cell) IsObstacle() bool     { return c.kind == KindObstacle }
func (c Cell) Axis() Axis           { return c.axis }
func (c Cell) Direction() Direction { return c.direction }

// IsOccupied reports whether a vehicle sits on the cell, always false for obstacles
func (c Cell) IsOccupied() bool {
	return c.kind == KindRoad && c.occupied
}

// Color returns the vehicle color on an occupied road, otherwise the cell's own color
func (c Cell) Color() RGB {
	if c.IsOccupied() {
		return c.vehicle.Color
	}
	return c.color
}

// Vehicle returns the payload of an occupied road
func (c Cell) Vehicle() (Vehicle, bool) {
	if !c.IsOccupied() {
		return Vehicle{}, false
	}
	return c.vehicle, true
}

// Occupy places v on an empty road cell
func (c *Cell) Occupy(v Vehicle) error {
	if c.kind != KindRoad {
		return fmt.Errorf("%w: occupy obstacle", ErrInvalidTransition)
	}
	if c.occupied {
		return fmt.Errorf("%w: occupy occupied road", ErrInvalidTransition)
	}
	c.occupied = true
	c.vehicle = v
	return nil
}

// Vacate clears the vehicle, no-op on obstacles and empty roads
func (c *Cell) Vacate() {
	if c.kind != KindRoad || !c.occupied {
		return
	}
	c.occupied = false
	c.vehicle = Vehicle{}
}

// Clone returns an independent copy; occupancy is carried over only when keepOccupancy is set
func (c Cell) Clone(keepOccupancy bool) Cell {
	out := c
	if !keepOccupancy {
		out.occupied = false
		out.vehicle = Vehicle{}
	}
	return out
}

// SameLayout reports whether two cells have the same variant, axis and direction, ignoring traffic
func (c Cell) SameLayout(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	if c.kind == KindObstacle {
		return c.color == o.color
	}
	return c.axis == o.axis && c.direction == o.direction
}

func (c Cell) String() string {
	if c.kind == KindObstacle {
		return "obstacle"
	}
	s := fmt.Sprintf("road(%s,%s)", c.axis, c.direction)
	if c.occupied {
		s += "*"
	}
	return s
}

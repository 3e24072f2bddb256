package core

import "errors"

var (
	// ErrOutOfBounds marks an index outside the grid extent
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidTransition marks an occupy on an obstacle or an occupied road
	ErrInvalidTransition = errors.New("invalid cell transition")
)

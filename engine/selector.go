package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/traffic-grid/core"
)

// Selector picks the color of a car spawned without an explicit payload
type Selector interface {
	Next(src *Source) core.RGB
}

// RoundRobin rotates through a fixed palette, advancing the cursor before each pick
type RoundRobin struct {
	palette []core.RGB
	cursor  int
}

// NewRoundRobin copies palette; an empty palette falls back to core.DefaultPalette
func NewRoundRobin(palette []core.RGB) *RoundRobin {
	if len(palette) == 0 {
		palette = core.DefaultPalette
	}
	p := make([]core.RGB, len(palette))
	copy(p, palette)
	return &RoundRobin{palette: p}
}

func (r *RoundRobin) Next(_ *Source) core.RGB {
	r.cursor = (r.cursor + 1) % len(r.palette)
	return r.palette[r.cursor]
}

// Cursor returns the index of the last color handed out
func (r *RoundRobin) Cursor() int {
	return r.cursor
}

// WeightedRandom draws palette entries proportionally to their weights
type WeightedRandom struct {
	palette []core.RGB
	cumul   []float64
	total   float64
}

var ErrInvalidWeights = errors.New("invalid palette weights")

// NewWeightedRandom validates that weights match the palette and sum to a positive value
func NewWeightedRandom(palette []core.RGB, weights []float64) (*WeightedRandom, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrInvalidWeights)
	}
	if len(weights) != len(palette) {
		return nil, fmt.Errorf("%w: %d weights for %d colors", ErrInvalidWeights, len(weights), len(palette))
	}

	w := &WeightedRandom{
		palette: make([]core.RGB, len(palette)),
		cumul:   make([]float64, len(weights)),
	}
	copy(w.palette, palette)
	for i, x := range weights {
		if x < 0 {
			return nil, fmt.Errorf("%w: negative weight at %d", ErrInvalidWeights, i)
		}
		w.total += x
		w.cumul[i] = w.total
	}
	if w.total <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}
	return w, nil
}

func (w *WeightedRandom) Next(src *Source) core.RGB {
	x := src.Float64() * w.total
	for i, c := range w.cumul {
		if x < c {
			return w.palette[i]
		}
	}
	return w.palette[len(w.palette)-1]
}

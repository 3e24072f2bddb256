package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/traffic-grid/core"
)

func TestRoundRobinAdvancesBeforePick(t *testing.T) {
	palette := []core.RGB{{R: 1, G: 0, B: 0}, {R: 2, G: 0, B: 0}, {R: 3, G: 0, B: 0}}
	rr := NewRoundRobin(palette)

	want := []core.RGB{{R: 2, G: 0, B: 0}, {R: 3, G: 0, B: 0}, {R: 1, G: 0, B: 0}, {R: 2, G: 0, B: 0}}
	for i, w := range want {
		if got := rr.Next(nil); got != w {
			t.Errorf("pick %d = %v, want %v", i, got, w)
		}
	}
	if rr.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", rr.Cursor())
	}
}

func TestRoundRobinCopiesPalette(t *testing.T) {
	palette := []core.RGB{{R: 1, G: 0, B: 0}, {R: 2, G: 0, B: 0}}
	rr := NewRoundRobin(palette)
	palette[1] = core.RGB{R: 9, G: 9, B: 9}

	if got := rr.Next(nil); got != (core.RGB{R: 2, G: 0, B: 0}) {
		t.Errorf("Palette aliasing: got %v", got)
	}
}

func TestRoundRobinEmptyFallsBack(t *testing.T) {
	rr := NewRoundRobin(nil)
	if got := rr.Next(nil); got != core.DefaultPalette[1] {
		t.Errorf("Empty palette pick = %v, want %v", got, core.DefaultPalette[1])
	}
}

func TestWeightedRandomValidation(t *testing.T) {
	palette := []core.RGB{{R: 1, G: 0, B: 0}, {R: 2, G: 0, B: 0}}
	cases := [][]float64{nil, {1}, {-1, 2}, {0, 0}}
	for _, w := range cases {
		if _, err := NewWeightedRandom(palette, w); !errors.Is(err, ErrInvalidWeights) {
			t.Errorf("weights %v: error = %v, want ErrInvalidWeights", w, err)
		}
	}
	if _, err := NewWeightedRandom(nil, nil); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("empty palette: error = %v", err)
	}
}

func TestWeightedRandomDistribution(t *testing.T) {
	a, b, c := core.RGB{R: 1, G: 0, B: 0}, core.RGB{R: 2, G: 0, B: 0}, core.RGB{R: 3, G: 0, B: 0}
	w, err := NewWeightedRandom([]core.RGB{a, b, c}, []float64{3, 1, 0})
	if err != nil {
		t.Fatal(err)
	}

	src := NewSource(3)
	counts := map[core.RGB]int{}
	const n = 8000
	for i := 0; i < n; i++ {
		counts[w.Next(src)]++
	}

	if counts[c] != 0 {
		t.Errorf("Zero-weight color picked %d times", counts[c])
	}
	frac := float64(counts[a]) / n
	if frac < 0.72 || frac > 0.78 {
		t.Errorf("Weight-3 color fraction %.3f, want ~0.75", frac)
	}
}

func TestGridUsesInjectedSelector(t *testing.T) {
	only := core.RGB{R: 7, G: 7, B: 7}
	sel, _ := NewWeightedRandom([]core.RGB{only}, []float64{1})

	g, _ := New(1, 3, core.NewRoad(core.Horizontal, core.Forward), Config{Selector: sel})
	g.InsertCar(0, 0)

	c, _ := g.CellAt(0, 0)
	if c.Color() != only {
		t.Errorf("Color = %v, want %v", c.Color(), only)
	}
}

package status

import (
	"sync"
	"testing"
)

func TestMetricMapGetReturnsStablePointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	a := m.Get("x")
	b := m.Get("x")
	if a != b {
		t.Error("Expected same pointer for repeated Get")
	}
	if !m.Has("x") || m.Has("y") {
		t.Error("Has mismatch")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Ints.Get(KeyTicks).Add(1)
		}()
	}
	wg.Wait()

	if got := reg.Ints.Get(KeyTicks).Load(); got != 50 {
		t.Errorf("Expected 50 increments, got %d", got)
	}
	if reg.Ints.Count() != 1 {
		t.Errorf("Expected a single metric, got %d", reg.Ints.Count())
	}
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	if f.Get() != 0 {
		t.Errorf("Zero value = %v, want 0", f.Get())
	}
	f.Set(0.375)
	if f.Get() != 0.375 {
		t.Errorf("Get() = %v, want 0.375", f.Get())
	}
}

func TestSnapshotOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get(KeyTicks).Store(3)
	reg.Ints.Get(KeyCars).Store(5)
	reg.Floats.Get(KeyDensity).Set(0.5)
	reg.Bools.Get(KeyPaused).Store(true)

	kv := reg.Snapshot()
	want := []any{KeyCars, int64(5), KeyTicks, int64(3), KeyDensity, 0.5, KeyPaused, true}
	if len(kv) != len(want) {
		t.Fatalf("Snapshot length %d, want %d: %v", len(kv), len(want), kv)
	}
	for i := range want {
		if kv[i] != want[i] {
			t.Errorf("kv[%d] = %v, want %v", i, kv[i], want[i])
		}
	}
	if reg.TotalCount() != 4 {
		t.Errorf("TotalCount() = %d, want 4", reg.TotalCount())
	}
}

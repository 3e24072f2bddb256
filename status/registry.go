package status

import "sync/atomic"

// Metric keys published by the simulation
const (
	KeyTicks      = "sim.ticks"
	KeyCars       = "sim.cars"
	KeyRoads      = "sim.roads"
	KeyMoved      = "sim.moved"
	KeyBlocked    = "sim.blocked"
	KeyExited     = "sim.exited"
	KeySpawned    = "sim.spawned"
	KeyExitTotal  = "sim.exited_total"
	KeySpawnTotal = "sim.spawned_total"
	KeyDensity    = "sim.density"
	KeyPaused     = "sim.paused"
)

// Registry is the central metrics facade
// Producers cache pointers at construction; readers (status bar, headless log) poll them
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Snapshot flattens all metrics into key/value pairs in sorted key order, ints before floats before bools
func (r *Registry) Snapshot() []any {
	var kv []any
	r.Ints.Range(func(k string, v *atomic.Int64) { kv = append(kv, k, v.Load()) })
	r.Floats.Range(func(k string, v *AtomicFloat) { kv = append(kv, k, v.Get()) })
	r.Bools.Range(func(k string, v *atomic.Bool) { kv = append(kv, k, v.Load()) })
	return kv
}

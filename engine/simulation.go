package engine

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/traffic-grid/core"
	"github.com/lixenwraith/traffic-grid/status"
)

// DefaultTickInterval matches a 5 ticks per second pace
const DefaultTickInterval = 200 * time.Millisecond

// Simulation owns a grid and advances it on a fixed tick
// Every access to the grid goes through one mutex so renderers never observe a partial tick
type Simulation struct {
	mu   sync.Mutex
	grid *Grid

	clock        *PausableClock
	tickInterval atomic.Int64 // nanoseconds

	logger *log.Logger
	onTick func(TickReport)

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statTicks      *atomic.Int64
	statCars       *atomic.Int64
	statRoads      *atomic.Int64
	statMoved      *atomic.Int64
	statBlocked    *atomic.Int64
	statExited     *atomic.Int64
	statSpawned    *atomic.Int64
	statExitTotal  *atomic.Int64
	statSpawnTotal *atomic.Int64
	statDensity    *status.AtomicFloat
	statPaused     *atomic.Bool
}

// NewSimulation wraps grid; nil logger discards, nil clock uses wall time, interval <= 0 uses the default
func NewSimulation(grid *Grid, reg *status.Registry, clock *PausableClock, logger *log.Logger, interval time.Duration) *Simulation {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Simulation{
		grid:           grid,
		clock:          clock,
		logger:         logger,
		stopChan:       make(chan struct{}),
		statTicks:      reg.Ints.Get(status.KeyTicks),
		statCars:       reg.Ints.Get(status.KeyCars),
		statRoads:      reg.Ints.Get(status.KeyRoads),
		statMoved:      reg.Ints.Get(status.KeyMoved),
		statBlocked:    reg.Ints.Get(status.KeyBlocked),
		statExited:     reg.Ints.Get(status.KeyExited),
		statSpawned:    reg.Ints.Get(status.KeySpawned),
		statExitTotal:  reg.Ints.Get(status.KeyExitTotal),
		statSpawnTotal: reg.Ints.Get(status.KeySpawnTotal),
		statDensity:    reg.Floats.Get(status.KeyDensity),
		statPaused:     reg.Bools.Get(status.KeyPaused),
	}
	s.SetTickInterval(interval)
	s.statPaused.Store(clock.IsPaused())
	s.publishCounts()
	return s
}

// OnTick registers an observer called after each tick, outside the grid lock
// Must be called before Start
func (s *Simulation) OnTick(fn func(TickReport)) {
	s.onTick = fn
}

// RunSafe executes fn with exclusive access to the grid
func (s *Simulation) RunSafe(fn func(g *Grid)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.grid)
	s.publishCountsLocked()
}

// View executes fn with exclusive read access to the grid
func (s *Simulation) View(fn func(g *Grid)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.grid)
}

// Step advances the grid by one tick regardless of pause state
func (s *Simulation) Step() TickReport {
	s.mu.Lock()
	report := s.grid.Advance()
	roads, _ := s.grid.Counts()
	s.mu.Unlock()

	s.publish(report, roads)
	s.logger.Debug("tick",
		"tick", report.Tick,
		"cars", report.Cars,
		"moved", report.Moved,
		"blocked", report.Blocked,
		"exited", report.Exited,
		"spawned", report.Spawned,
	)
	if s.onTick != nil {
		s.onTick(report)
	}
	return report
}

func (s *Simulation) publish(r TickReport, roads int) {
	s.statTicks.Store(int64(r.Tick))
	s.statCars.Store(int64(r.Cars))
	s.statRoads.Store(int64(roads))
	s.statMoved.Store(int64(r.Moved))
	s.statBlocked.Store(int64(r.Blocked))
	s.statExited.Store(int64(r.Exited))
	s.statSpawned.Store(int64(r.Spawned))
	s.statExitTotal.Add(int64(r.Exited))
	s.statSpawnTotal.Add(int64(r.Spawned))
	s.statDensity.Set(density(r.Cars, roads))
}

func (s *Simulation) publishCounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishCountsLocked()
}

// publishCountsLocked refreshes occupancy metrics after an edit
func (s *Simulation) publishCountsLocked() {
	roads, cars := s.grid.Counts()
	s.statCars.Store(int64(cars))
	s.statRoads.Store(int64(roads))
	s.statDensity.Set(density(cars, roads))
}

func density(cars, roads int) float64 {
	if roads == 0 {
		return 0
	}
	return float64(cars) / float64(roads)
}

// SetTickInterval changes pacing of the running loop, takes effect on the next tick
func (s *Simulation) SetTickInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultTickInterval
	}
	s.tickInterval.Store(int64(d))
}

func (s *Simulation) TickInterval() time.Duration {
	return time.Duration(s.tickInterval.Load())
}

func (s *Simulation) Pause() {
	s.clock.Pause()
	s.statPaused.Store(true)
	s.logger.Info("simulation paused")
}

func (s *Simulation) Resume() {
	s.clock.Resume()
	s.statPaused.Store(false)
	s.logger.Info("simulation resumed")
}

// TogglePause flips pause state and returns the new state
func (s *Simulation) TogglePause() bool {
	if s.clock.IsPaused() {
		s.Resume()
		return false
	}
	s.Pause()
	return true
}

func (s *Simulation) IsPaused() bool {
	return s.clock.IsPaused()
}

// Start launches the tick loop; no-op once Stop has been called
func (s *Simulation) Start() {
	select {
	case <-s.stopChan:
		return
	default:
	}
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		s.logger.Info("simulation started", "interval", s.TickInterval(), "seed", s.grid.Seed())
		core.Go(s.loop)
	}
}

// Stop halts the tick loop and waits for it to exit; a stopped simulation does not start again
func (s *Simulation) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		if s.running.Swap(false) {
			s.logger.Info("simulation stopped", "ticks", s.statTicks.Load())
		}
	})
}

// loop ticks on simulation-clock deadlines, so time spent paused never produces catch-up ticks
func (s *Simulation) loop() {
	defer s.wg.Done()

	deadline := s.clock.Now().Add(s.TickInterval())

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		default:
		}

		interval := s.TickInterval()
		var sleep time.Duration

		if s.clock.IsPaused() {
			sleep = interval * 2
		} else {
			now := s.clock.Now()
			if !now.Before(deadline) {
				s.Step()

				deadline = deadline.Add(interval)
				if now.Sub(deadline) > interval*2 {
					deadline = now.Add(interval)
				}
			}
			sleep = deadline.Sub(s.clock.Now())
		}

		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-s.stopChan:
			return
		}
	}
}

package timectrl

import (
	"sync"
	"time"
)

// SimClock is an interface for reading simulation time. Components that
// only need "what time is it" depend on this rather than the concrete
// controller type, which keeps them testable.
type SimClock interface {
	// Now returns the current simulation time.
	Now() time.Time
}

// Mode describes how the TimeController advances simulation time.
type Mode int

const (
	// RealTime advances by measured wall-clock deltas between frames.
	RealTime Mode = iota
	// Accelerated advances by a fixed Tick per frame as fast as the loop
	// can run, for deterministic offline runs.
	Accelerated
)

// TimeController drives the frame loop and notifies registered
// listeners with the current simulation time and the delta, in seconds,
// since the previous frame. It implements SimClock.
type TimeController struct {
	mu        sync.RWMutex
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	// currentTime tracks the current simulation time. It is updated as
	// the controller advances.
	currentTime time.Time

	listeners []func(now time.Time, dt float64)
}

// NewTimeController constructs a controller.
func NewTimeController(start time.Time, tick time.Duration, mode Mode) *TimeController {
	return &TimeController{
		StartTime:   start,
		Tick:        tick,
		Mode:        mode,
		currentTime: start,
	}
}

// Now returns the current simulation time. Implements SimClock.
func (tc *TimeController) Now() time.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentTime
}

// SetTime jumps the simulation clock to t without notifying listeners.
func (tc *TimeController) SetTime(t time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.currentTime = t
}

// AddListener registers a callback invoked on every frame.
func (tc *TimeController) AddListener(fn func(now time.Time, dt float64)) {
	tc.listeners = append(tc.listeners, fn)
}

// Step advances the clock by exactly one Tick and notifies listeners.
// It is the deterministic single-frame primitive tests build on.
func (tc *TimeController) Step() {
	tc.mu.Lock()
	tc.currentTime = tc.currentTime.Add(tc.Tick)
	now := tc.currentTime
	tc.mu.Unlock()

	dt := tc.Tick.Seconds()
	for _, fn := range tc.listeners {
		fn(now, dt)
	}
}

// Start runs the frame loop for the specified duration of simulation
// time in a separate goroutine, or forever when duration is zero. It
// returns a channel that is closed when the loop finishes.
//
// In RealTime mode the dt handed to listeners is the measured wall
// clock elapsed since the previous frame, so listeners stay correct
// when the ticker fires late. In Accelerated mode dt is always Tick.
func (tc *TimeController) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		tc.mu.Lock()
		simTime := tc.StartTime
		tc.currentTime = simTime
		tc.mu.Unlock()

		elapsed := time.Duration(0)

		if tc.Mode == Accelerated {
			for {
				if duration > 0 && elapsed >= duration {
					return
				}
				tc.Step()
				elapsed += tc.Tick
			}
		}

		ticker := time.NewTicker(tc.Tick)
		defer ticker.Stop()
		last := time.Now()

		for {
			if duration > 0 && elapsed >= duration {
				return
			}

			<-ticker.C
			now := time.Now()
			wallDt := now.Sub(last)
			last = now

			simTime = simTime.Add(wallDt)
			elapsed += wallDt

			tc.mu.Lock()
			tc.currentTime = simTime
			tc.mu.Unlock()

			dt := wallDt.Seconds()
			for _, fn := range tc.listeners {
				fn(simTime, dt)
			}
		}
	}()
	return done
}

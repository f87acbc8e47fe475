// Package timer implements the stopwatch that measures running time across
// pause and resume cycles.
package timer

import (
	"errors"
	"time"
)

var (
	// ErrAlreadyStarted is returned by Start when the timer is not idle.
	ErrAlreadyStarted = errors.New(
		"the timer is already running or paused: reset it before starting again",
	)

	// ErrNotStarted is returned by PauseOrResume when the timer is idle.
	ErrNotStarted = errors.New("the timer has not been started")
)

// DefaultTickInterval is how often a running timer recomputes its elapsed
// time.
const DefaultTickInterval = 100 * time.Millisecond

// Status is the lifecycle state of the timer.
type Status int

const (
	Idle Status = iota
	Running
	Paused
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// State is a snapshot of the timer.
type State struct {
	Status         Status  `json:"status"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// Engine is a polling stopwatch. Elapsed time is recomputed from the wall
// clock on every Tick while running and frozen otherwise. An Engine is not
// safe for concurrent use.
type Engine struct {
	clock       Clock
	anchor      time.Time
	accumulated time.Duration
	elapsed     time.Duration
	status      Status
}

// New returns an idle Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock: systemClock{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start begins measuring from zero. It is only valid from Idle.
func (e *Engine) Start() error {
	if e.status != Idle {
		return ErrAlreadyStarted
	}

	e.status = Running
	e.anchor = e.clock.Now()
	e.accumulated = 0
	e.elapsed = 0

	return nil
}

// PauseOrResume toggles between Running and Paused. Pausing banks the time
// measured so far; resuming continues adding to it.
func (e *Engine) PauseOrResume() error {
	switch e.status {
	case Running:
		e.Tick()

		e.accumulated = e.elapsed
		e.anchor = time.Time{}
		e.status = Paused
	case Paused:
		e.anchor = e.clock.Now()
		e.status = Running
	default:
		return ErrNotStarted
	}

	return nil
}

// Reset returns the timer to Idle with no elapsed time.
func (e *Engine) Reset() {
	e.status = Idle
	e.elapsed = 0
	e.accumulated = 0
	e.anchor = time.Time{}
}

// Tick recomputes the elapsed time if the timer is running and returns the
// resulting state. Elapsed time never decreases, even if the clock steps
// backwards.
func (e *Engine) Tick() State {
	if e.status == Running {
		elapsed := e.accumulated + e.clock.Now().Sub(e.anchor)
		if elapsed > e.elapsed {
			e.elapsed = elapsed
		}
	}

	return e.State()
}

// State returns the timer state as of the last recomputation.
func (e *Engine) State() State {
	return State{
		Status:         e.status,
		ElapsedSeconds: e.elapsed.Seconds(),
	}
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// Elapsed returns the elapsed time as of the last recomputation.
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

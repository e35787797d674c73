// Package circuitbreaker stops calling an optional dependency after it keeps
// failing and probes it again once a cool-down has passed.
// No external dependencies - uses only standard library.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State of a breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

var (
	// ErrCircuitOpen rejects calls while the cool-down runs.
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrTooManyRequests rejects calls once the half-open probe budget is spent.
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// IsRejection reports whether err came from the breaker rather than the call.
func IsRejection(err error) bool {
	return errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrTooManyRequests)
}

// Settings configures a breaker. Zero numeric fields take the defaults
// noted on each field.
type Settings struct {
	Name string

	// MaxFailures consecutive failures open the circuit (default 5).
	MaxFailures int

	// ProbeSuccesses half-open successes close it again (default 1).
	ProbeSuccesses int

	// MaxProbes caps calls admitted while half-open (default 1).
	MaxProbes int

	// CoolDown is how long the circuit stays open (default 30s).
	CoolDown time.Duration

	// Counts decides which errors are failures. Nil counts every error.
	Counts func(error) bool

	// OnTransition runs under the breaker lock on every state change.
	OnTransition func(name string, from, to State)

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Settings) applyDefaults() {
	if s.MaxFailures <= 0 {
		s.MaxFailures = 5
	}
	if s.ProbeSuccesses <= 0 {
		s.ProbeSuccesses = 1
	}
	if s.MaxProbes <= 0 {
		s.MaxProbes = 1
	}
	if s.CoolDown <= 0 {
		s.CoolDown = 30 * time.Second
	}
	if s.Now == nil {
		s.Now = time.Now
	}
}

// Stats is a snapshot of a breaker's counters.
type Stats struct {
	Calls     int
	Successes int
	Failures  int

	// Streak of the latest outcome: positive for successes, negative for failures.
	Streak int
}

// CircuitBreaker guards calls to one dependency. Safe for concurrent use.
type CircuitBreaker struct {
	settings Settings

	mu       sync.Mutex
	state    State
	stats    Stats
	openedAt time.Time
	probes   int
}

// New creates a closed breaker.
func New(s Settings) *CircuitBreaker {
	s.applyDefaults()
	return &CircuitBreaker{settings: s}
}

// CacheBreaker returns a breaker for a best-effort cache: three failures
// open it for 30 seconds and a single good probe closes it.
func CacheBreaker(counts func(error) bool, onTransition func(name string, from, to State)) *CircuitBreaker {
	return New(Settings{
		Name:         "cache",
		MaxFailures:  3,
		CoolDown:     30 * time.Second,
		Counts:       counts,
		OnTransition: onTransition,
	})
}

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.settings.Name
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats returns a snapshot of the counters.
func (cb *CircuitBreaker) Stats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stats
}

// Execute runs fn unless the circuit rejects it, then records the outcome.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn(ctx)
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.settings.Now().Sub(cb.openedAt) < cb.settings.CoolDown {
			return ErrCircuitOpen
		}
		cb.transition(StateHalfOpen)
		fallthrough
	case StateHalfOpen:
		if cb.probes >= cb.settings.MaxProbes {
			return ErrTooManyRequests
		}
		cb.probes++
	}
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.stats.Calls++
	failed := err != nil
	if failed && cb.settings.Counts != nil {
		failed = cb.settings.Counts(err)
	}

	if !failed {
		cb.stats.Successes++
		if cb.stats.Streak < 0 {
			cb.stats.Streak = 0
		}
		cb.stats.Streak++
		if cb.state == StateHalfOpen && cb.stats.Streak >= cb.settings.ProbeSuccesses {
			cb.transition(StateClosed)
		}
		return
	}

	cb.stats.Failures++
	if cb.stats.Streak > 0 {
		cb.stats.Streak = 0
	}
	cb.stats.Streak--
	// A failed probe reopens the circuit immediately.
	if cb.state == StateHalfOpen || -cb.stats.Streak >= cb.settings.MaxFailures {
		cb.openedAt = cb.settings.Now()
		cb.transition(StateOpen)
	}
}

func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	cb.stats.Streak = 0
	cb.probes = 0

	if cb.settings.OnTransition != nil {
		cb.settings.OnTransition(cb.settings.Name, from, to)
	}
}

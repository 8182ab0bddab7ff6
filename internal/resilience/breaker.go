package resilience

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrOpen is returned while the breaker is rejecting calls outright.
	ErrOpen = errors.New("circuit breaker is open")

	// ErrProbeLimit is returned when the half-open probe budget is exhausted.
	ErrProbeLimit = errors.New("circuit breaker probe limit reached")
)

// State represents the breaker state.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Options configures a Breaker. Zero values take sensible defaults.
type Options struct {
	// Name identifies the breaker in state change callbacks.
	Name string
	// FailureThreshold is the number of consecutive failures that trips
	// the breaker open. Default 5.
	FailureThreshold uint32
	// Cooldown is how long the breaker stays open before allowing probes.
	// Default 30s.
	Cooldown time.Duration
	// ProbeLimit is the number of in-flight calls allowed while half-open,
	// and the number of consecutive successes required to close. Default 1.
	ProbeLimit uint32
	// OnStateChange is invoked on every transition, outside the lock held
	// for the transition itself.
	OnStateChange func(name string, from, to State)
}

// Breaker fails calls fast while the guarded upstream is down.
type Breaker struct {
	opts Options

	mu          sync.Mutex
	state       State
	failures    uint32
	successes   uint32
	inFlight    uint32
	reopenAfter time.Time
}

// NewBreaker creates a closed breaker.
func NewBreaker(opts Options) *Breaker {
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.Cooldown == 0 {
		opts.Cooldown = 30 * time.Second
	}
	if opts.ProbeLimit == 0 {
		opts.ProbeLimit = 1
	}
	return &Breaker{opts: opts, state: StateClosed}
}

// State returns the current state, accounting for an elapsed cooldown.
func (b *Breaker) State() State {
	b.mu.Lock()
	state, transition := b.currentLocked(time.Now())
	b.mu.Unlock()

	if transition != nil {
		transition()
	}
	return state
}

// Do runs fn if the breaker admits the call, recording the outcome.
func (b *Breaker) Do(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()
	b.record(err == nil)
	return err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	state, transition := b.currentLocked(time.Now())

	var err error
	switch state {
	case StateOpen:
		err = ErrOpen
	case StateHalfOpen:
		if b.inFlight >= b.opts.ProbeLimit {
			err = ErrProbeLimit
		}
	}
	if err == nil {
		b.inFlight++
	}
	b.mu.Unlock()

	if transition != nil {
		transition()
	}
	return err
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	now := time.Now()
	state, cooldownTransition := b.currentLocked(now)
	if b.inFlight > 0 {
		b.inFlight--
	}

	var transition func()
	switch {
	case success && state == StateHalfOpen:
		b.successes++
		if b.successes >= b.opts.ProbeLimit {
			transition = b.setLocked(StateClosed, now)
		}
	case success:
		b.failures = 0
	case state == StateHalfOpen:
		transition = b.setLocked(StateOpen, now)
	default:
		b.failures++
		if b.failures >= b.opts.FailureThreshold {
			transition = b.setLocked(StateOpen, now)
		}
	}
	b.mu.Unlock()

	if cooldownTransition != nil {
		cooldownTransition()
	}
	if transition != nil {
		transition()
	}
}

// currentLocked resolves the effective state, moving open to half-open once
// the cooldown has elapsed. The returned transition closure, if any, must be
// invoked after the lock is released.
func (b *Breaker) currentLocked(now time.Time) (State, func()) {
	if b.state == StateOpen && now.After(b.reopenAfter) {
		b.state = StateHalfOpen
		b.successes = 0
		b.inFlight = 0
		if cb := b.opts.OnStateChange; cb != nil {
			return b.state, func() { cb(b.opts.Name, StateOpen, StateHalfOpen) }
		}
	}
	return b.state, nil
}

func (b *Breaker) setLocked(state State, now time.Time) func() {
	if b.state == state {
		return nil
	}
	prev := b.state
	b.state = state
	b.failures = 0
	b.successes = 0
	if state == StateOpen {
		b.reopenAfter = now.Add(b.opts.Cooldown)
	}
	if cb := b.opts.OnStateChange; cb != nil {
		return func() { cb(b.opts.Name, prev, state) }
	}
	return nil
}

package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream failed")

func fail() error    { return errUpstream }
func succeed() error { return nil }

func TestBreakerStaysClosedOnSuccess(t *testing.T) {
	b := NewBreaker(Options{FailureThreshold: 2})

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Do(succeed))
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := NewBreaker(Options{FailureThreshold: 3, Cooldown: time.Minute})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Do(fail), errUpstream)
	}
	assert.Equal(t, StateOpen, b.State())

	err := b.Do(succeed)
	assert.ErrorIs(t, err, ErrOpen)
}

func TestBreakerSuccessResetsFailureStreak(t *testing.T) {
	b := NewBreaker(Options{FailureThreshold: 3, Cooldown: time.Minute})

	_ = b.Do(fail)
	_ = b.Do(fail)
	require.NoError(t, b.Do(succeed))
	_ = b.Do(fail)
	_ = b.Do(fail)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b := NewBreaker(Options{FailureThreshold: 2, Cooldown: 10 * time.Millisecond, ProbeLimit: 2})

	_ = b.Do(fail)
	_ = b.Do(fail)
	assert.Equal(t, StateOpen, b.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Do(succeed))
	require.NoError(t, b.Do(succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker(Options{FailureThreshold: 2, Cooldown: 10 * time.Millisecond})

	_ = b.Do(fail)
	_ = b.Do(fail)
	time.Sleep(20 * time.Millisecond)

	assert.ErrorIs(t, b.Do(fail), errUpstream)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Do(succeed), ErrOpen)
}

func TestBreakerStateChangeCallback(t *testing.T) {
	var transitions []string
	b := NewBreaker(Options{
		Name:             "provider",
		FailureThreshold: 2,
		Cooldown:         10 * time.Millisecond,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+": "+from.String()+"->"+to.String())
		},
	})

	_ = b.Do(fail)
	_ = b.Do(fail)
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, b.Do(succeed))

	assert.Contains(t, transitions, "provider: closed->open")
	assert.Contains(t, transitions, "provider: open->half-open")
	assert.Contains(t, transitions, "provider: half-open->closed")
}

func TestBreakerCallbackMayReadState(t *testing.T) {
	// Callbacks run outside the breaker lock on every transition,
	// including the cooldown-elapsed one, so reading back state from a
	// callback must not deadlock.
	var b *Breaker
	var observed []State
	b = NewBreaker(Options{
		FailureThreshold: 1,
		Cooldown:         5 * time.Millisecond,
		OnStateChange: func(_ string, _, _ State) {
			observed = append(observed, b.State())
		},
	})

	_ = b.Do(fail)
	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		assert.Equal(t, StateHalfOpen, b.State())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("State() deadlocked inside the state change callback")
	}
	require.NotEmpty(t, observed)
}

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func newClock() *manualClock {
	return &manualClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func fail(context.Context) error    { return errBoom }
func succeed(context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	clock := newClock()
	cb := New(Settings{Name: "test", MaxFailures: 2, CoolDown: time.Minute, Now: clock.Now})
	ctx := context.Background()

	assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.True(t, IsRejection(err))
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	cb := New(Settings{MaxFailures: 2})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	require.NoError(t, cb.Execute(ctx, succeed))
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, Stats{Calls: 3, Successes: 1, Failures: 2, Streak: -1}, cb.Stats())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	clock := newClock()
	var transitions []string
	cb := New(Settings{
		Name:        "test",
		MaxFailures: 1,
		CoolDown:    time.Minute,
		Now:         clock.Now,
		OnTransition: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+">"+to.String())
		},
	})
	ctx := context.Background()

	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	require.Equal(t, StateOpen, cb.State())

	clock.now = clock.now.Add(time.Minute)
	require.NoError(t, cb.Execute(ctx, succeed))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []string{"closed>open", "open>half-open", "half-open>closed"}, transitions)
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	clock := newClock()
	cb := New(Settings{MaxFailures: 1, CoolDown: time.Minute, Now: clock.Now})
	ctx := context.Background()

	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	clock.now = clock.now.Add(2 * time.Minute)
	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)

	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrCircuitOpen)
}

func TestCircuitBreaker_CountsFilter(t *testing.T) {
	ignored := errors.New("miss")
	cb := New(Settings{MaxFailures: 1, Counts: func(err error) bool {
		return !errors.Is(err, ignored)
	}})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(context.Background(), func(context.Context) error { return ignored }), ignored)
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 3, cb.Stats().Successes)
}

func TestCacheBreaker(t *testing.T) {
	cb := CacheBreaker(nil, nil)
	ctx := context.Background()

	assert.Equal(t, "cache", cb.Name())
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	assert.Equal(t, StateOpen, cb.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}

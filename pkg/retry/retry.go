// Package retry runs an operation with exponential backoff and jitter.
// It is used to ride out slow-starting PostgreSQL instances when the CLI
// opens its storage.
// No external dependencies - uses only standard library.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Permanent marks err so that Do returns it without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p permanent
	return errors.As(err, &p)
}

// Policy decides how often and how far apart attempts run.
type Policy struct {
	// Attempts counts the first call.
	Attempts int

	// Delay before the first retry, doubled after each one up to MaxDelay.
	Delay    time.Duration
	MaxDelay time.Duration

	// Jitter spreads each delay by up to this fraction in either direction.
	Jitter float64

	// RetryIf filters retryable errors. Nil retries everything not Permanent.
	RetryIf func(error) bool

	// OnRetry runs before sleeping ahead of attempt+1.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultPolicy is three attempts starting at 200ms.
func DefaultPolicy() Policy {
	return Policy{
		Attempts: 3,
		Delay:    200 * time.Millisecond,
		MaxDelay: 5 * time.Second,
		Jitter:   0.1,
	}
}

// Option adjusts a Policy.
type Option func(*Policy)

// WithMaxAttempts sets Attempts. Non-positive values are ignored.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		if n > 0 {
			p.Attempts = n
		}
	}
}

// WithBackoff sets the first and the largest delay.
func WithBackoff(first, limit time.Duration) Option {
	return func(p *Policy) {
		if first > 0 {
			p.Delay = first
		}
		if limit > 0 {
			p.MaxDelay = limit
		}
	}
}

// WithJitter sets Jitter, clamped to [0, 1].
func WithJitter(j float64) Option {
	return func(p *Policy) {
		p.Jitter = min(max(j, 0), 1)
	}
}

// WithRetryIf sets the retry classifier.
func WithRetryIf(fn func(error) bool) Option {
	return func(p *Policy) { p.RetryIf = fn }
}

// WithOnRetry sets the retry hook.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(p *Policy) { p.OnRetry = fn }
}

// Do calls op until it succeeds or the policy gives up, and returns the
// error of the last attempt with any Permanent marker stripped. A context
// that ends before the first attempt yields ctx.Err().
func Do(ctx context.Context, op func(ctx context.Context) error, opts ...Option) error {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}

	var err error
	delay := min(p.Delay, p.MaxDelay)
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return err
			}
			return ctxErr
		}

		if err = op(ctx); err == nil {
			return nil
		}
		var perm permanent
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= p.Attempts || (p.RetryIf != nil && !p.RetryIf(err)) {
			return err
		}

		wait := p.jittered(delay)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}
		if !sleep(ctx, wait) {
			return err
		}
		delay = min(delay*2, p.MaxDelay)
	}
}

// DoWithData is Do for operations that produce a value.
func DoWithData[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	var out T
	err := Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = op(ctx)
		return err
	}, opts...)
	return out, err
}

func (p Policy) jittered(d time.Duration) time.Duration {
	if p.Jitter <= 0 {
		return d
	}
	spread := float64(d) * p.Jitter * (2*rand.Float64() - 1)
	return max(d+time.Duration(spread), 0)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

package backoff

import (
	"context"
	"math/rand"
	"time"
)

// Strategy maps the number of completed waits to the next delay
type Strategy func(attempt int, start time.Duration) time.Duration

func Exponential(attempt int, start time.Duration) time.Duration {
	if attempt > 32 {
		attempt = 32
	}
	return start << uint(attempt)
}

func Linear(attempt int, start time.Duration) time.Duration {
	return time.Duration(attempt+1) * start
}

// Backoff is not safe for concurrent use, each retry loop owns one.
type Backoff struct {
	strategy Strategy
	start    time.Duration
	limit    time.Duration
	jitter   float64
	attempt  int
}

// NewBackoff returns a Backoff whose delays never exceed limit, 0 means unbounded.
func NewBackoff(strategy Strategy, start time.Duration, limit time.Duration) *Backoff {
	return &Backoff{strategy: strategy, start: start, limit: limit}
}

func NewExponential(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(Exponential, start, limit)
}

func NewLinear(start time.Duration, limit time.Duration) *Backoff {
	return NewBackoff(Linear, start, limit)
}

// WithJitter shortens every delay by a random fraction up to f, so callers
// contending for the same resource spread out.
func (b *Backoff) WithJitter(f float64) *Backoff {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	b.jitter = f
	return b
}

func (b *Backoff) Reset() {
	b.attempt = 0
}

func (b *Backoff) Attempts() int {
	return b.attempt
}

// Next is the delay the next Backoff call sleeps, before jitter
func (b *Backoff) Next() time.Duration {
	d := b.strategy(b.attempt, b.start)
	if b.limit > 0 && (d > b.limit || d < 0) {
		d = b.limit
	}
	return d
}

// Backoff sleeps for the next delay. It returns ctx.Err() when ctx is done first.
func (b *Backoff) Backoff(ctx context.Context) error {
	d := b.Next()
	if b.jitter > 0 {
		d -= time.Duration(rand.Float64() * b.jitter * float64(d))
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		b.attempt++
		return nil
	}
}

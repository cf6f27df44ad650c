package provider

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum spacing between outbound calls to a single
// provider. One Limiter is shared process-wide per provider, so the spacing
// guarantee holds across concurrent analyze requests; rate.Limiter keeps the
// last-call timestamp consistent under its own lock.
type Limiter struct {
	rl *rate.Limiter
}

// NewLimiter creates a limiter that allows one call per minInterval.
func NewLimiter(minInterval time.Duration) *Limiter {
	if minInterval <= 0 {
		minInterval = time.Nanosecond
	}
	return &Limiter{rl: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the spacing allows another call or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.rl.Wait(ctx)
}

// sleepJitter blocks for a random duration in [min, max), or until the
// context is cancelled. Used between provider strategies to stay under
// provider-side throttling thresholds.
func sleepJitter(ctx context.Context, min, max time.Duration) {
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min)))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

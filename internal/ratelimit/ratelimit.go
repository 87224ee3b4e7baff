package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps a token bucket rate limiter. A nil Limiter never blocks.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter that allows rps requests per second.
// A non-positive rps disables limiting.
func New(rps float64) *Limiter {
	if rps <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the limiter allows another request.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}

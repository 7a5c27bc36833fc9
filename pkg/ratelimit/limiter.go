package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces upstream requests
type Limiter interface {
	// Allow checks if a request is allowed under the current rate limit
	Allow() bool
	// Wait blocks until a request is allowed or ctx is done
	Wait(ctx context.Context) error
	// Delay reports how long the next request would have to wait
	Delay() time.Duration
}

// Rate spreads requests evenly over a period, allowing a burst of up to
// the full per-period budget.
type Rate struct {
	limiter *rate.Limiter
}

// NewRate creates a limiter allowing requests per period
func NewRate(requests int, per time.Duration) *Rate {
	return &Rate{
		limiter: rate.NewLimiter(rate.Every(per/time.Duration(requests)), requests),
	}
}

// PerMinute returns a limiter allowing n requests per minute, or an
// unlimited one when n is not positive
func PerMinute(n int) Limiter {
	if n <= 0 {
		return Unlimited{}
	}
	return NewRate(n, time.Minute)
}

// Allow checks if a request can proceed now
func (r *Rate) Allow() bool {
	return r.limiter.Allow()
}

// Wait blocks until a request can proceed. A wait that would outlast the
// context deadline fails straight away with context.DeadlineExceeded.
func (r *Rate) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("rate limit wait: %w", context.DeadlineExceeded)
	}
	return nil
}

// Delay returns the time until the next token, zero when one is available
func (r *Rate) Delay() time.Duration {
	tokens := r.limiter.Tokens()
	if tokens >= 1 {
		return 0
	}
	perToken := time.Duration(float64(time.Second) / float64(r.limiter.Limit()))
	return time.Duration((1 - tokens) * float64(perToken))
}

// Unlimited never blocks
type Unlimited struct{}

func (Unlimited) Allow() bool                    { return true }
func (Unlimited) Wait(ctx context.Context) error { return ctx.Err() }
func (Unlimited) Delay() time.Duration           { return 0 }

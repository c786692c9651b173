package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter gates repeated runs with a token bucket.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter allows perSecond events with a burst of one. A non-positive
// rate disables limiting.
func NewLimiter(perSecond float64) *Limiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &Limiter{inner: rate.NewLimiter(limit, 1)}
}

// Allow reports whether an event may happen now, consuming a token if so.
func (l *Limiter) Allow() bool {
	return l.inner.Allow()
}

// Wait blocks until the next event may happen. It reports whether the caller
// had to wait.
func (l *Limiter) Wait(ctx context.Context) (bool, error) {
	r := l.inner.Reserve()
	delay := r.Delay()
	if delay <= 0 {
		return false, nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		r.Cancel()
		return true, ctx.Err()
	case <-timer.C:
		return true, nil
	}
}

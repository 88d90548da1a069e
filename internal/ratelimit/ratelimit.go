// Package ratelimit throttles how fast rows are handed to the output
// sink, so extractions feeding slow downstream systems can be paced.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or a negative limit for no rate limiting.
func New(rowsPerSecond float64) *Limiter {
	if rowsPerSecond <= 0 {
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Burst of one row: the first row passes immediately, later rows
	// wait out the configured interval.
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rowsPerSecond), 1),
	}
}

// Wait blocks until the next row may be emitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit reports the configured rows per second, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}

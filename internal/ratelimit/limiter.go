package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrQuotaExceeded is returned by Acquire once the per-run call ceiling has
// been reached. It is fatal to the run: callers must abort the current call
// chain and never retry past it.
var ErrQuotaExceeded = errors.New("daily API quota exceeded")

// Limiter enforces a minimum spacing between outbound API calls and a hard
// ceiling on the total number of calls per run. It is the only blocking
// point in the scraper.
//
// The limiter is touched exclusively by the single control goroutine of a
// run, so it carries no locking. A concurrent fetcher would need to wrap it
// in a mutex or hand it to a dedicated goroutine.
type Limiter struct {
	// interval is the minimum spacing between consecutive calls.
	interval time.Duration

	// maxCalls is the hard ceiling on calls for this limiter's lifetime.
	maxCalls int

	// calls counts acquisitions so far. Reset only by constructing a new
	// Limiter.
	calls int

	// last is the timestamp of the most recent acquisition.
	last time.Time

	// now and sleep are indirections over the clock for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a Limiter with the given minimum spacing and call ceiling.
func New(interval time.Duration, maxCalls int) *Limiter {
	return &Limiter{
		interval: interval,
		maxCalls: maxCalls,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Acquire blocks until the minimum spacing since the previous call has
// elapsed, then records the call. It returns ErrQuotaExceeded once the call
// count has reached the ceiling; the acquisition that hits the ceiling is
// the one that fails, before any request is sent.
//
// Cancellation is honored only on entry: once Acquire decides to sleep, the
// sleep runs to completion. A stop request therefore takes effect between
// discrete API calls, never during the enforced delay.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !l.last.IsZero() {
		if elapsed := l.now().Sub(l.last); elapsed < l.interval {
			l.sleep(l.interval - elapsed)
		}
	}

	l.last = l.now()
	l.calls++

	if l.calls >= l.maxCalls {
		return ErrQuotaExceeded
	}

	return nil
}

// Calls returns the number of acquisitions so far, for run reporting.
func (l *Limiter) Calls() int {
	return l.calls
}

// Package ratelimit implements the sliding-window limiter that paces
// outbound workspace operations.
//
// The limiter admits at most limit operations per rolling interval, based on
// the timestamps of recent admissions. Queued waiters are released strictly
// in the order they arrived. A token-bucket limiter (golang.org/x/time/rate)
// deliberately is not used here: the executor needs hard
// N-per-rolling-window semantics with FIFO wakeups, not smoothed refill.
// Limiters are plain values constructed per run so independent runs never
// share timing state.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter bounds operations to limit per rolling interval.
type Limiter struct {
	limit    int
	interval time.Duration

	mu      sync.Mutex
	stamps  []time.Time
	waiters []chan struct{}
	timer   *time.Timer
}

// New creates a limiter admitting limit operations per interval.
func New(limit int, interval time.Duration) *Limiter {
	if limit < 1 {
		limit = 1
	}
	return &Limiter{
		limit:    limit,
		interval: interval,
	}
}

// Wait blocks until the caller may proceed. Admissions below the limit
// return immediately; otherwise the caller queues behind earlier waiters and
// is woken when the oldest admission leaves the window. Cancellation of ctx
// abandons the wait.
func (l *Limiter) Wait(ctx context.Context) error {
	ch := make(chan struct{})

	l.mu.Lock()
	l.waiters = append(l.waiters, ch)
	l.pump(time.Now())
	l.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		l.abandon(ch)
		l.mu.Unlock()
		// The slot may have been granted between ctx firing and the lock.
		select {
		case <-ch:
			return nil
		default:
		}
		return ctx.Err()
	}
}

// pump prunes expired admissions, grants slots to waiters in FIFO order and,
// when the window is full, arms a timer for the oldest admission's expiry.
// Callers must hold l.mu.
func (l *Limiter) pump(now time.Time) {
	cutoff := now.Add(-l.interval)
	kept := l.stamps[:0]
	for _, ts := range l.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.stamps = kept

	for len(l.waiters) > 0 && len(l.stamps) < l.limit {
		l.stamps = append(l.stamps, now)
		close(l.waiters[0])
		l.waiters = l.waiters[1:]
	}

	if len(l.waiters) == 0 || l.timer != nil {
		return
	}

	delay := l.stamps[0].Add(l.interval).Sub(now)
	if delay < 0 {
		delay = 0
	}
	l.timer = time.AfterFunc(delay, func() {
		l.mu.Lock()
		l.timer = nil
		l.pump(time.Now())
		l.mu.Unlock()
	})
}

// abandon removes a cancelled waiter from the queue. Callers must hold l.mu.
func (l *Limiter) abandon(ch chan struct{}) {
	for i, w := range l.waiters {
		if w == ch {
			l.waiters = append(l.waiters[:i], l.waiters[i+1:]...)
			return
		}
	}
}

package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces a minimum interval between calls to one external API.
// Each API-backed client owns its own Limiter; the last-call time is held
// here rather than in package state.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func New(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// NewWithClock is used by tests to pin time.
func NewWithClock(interval time.Duration, now func() time.Time, sleep func(time.Duration)) *Limiter {
	return &Limiter{
		interval: interval,
		now:      now,
		sleep:    sleep,
	}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous call, then records the current call.
func (l *Limiter) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.lastCall.IsZero() {
		elapsed := l.now().Sub(l.lastCall)
		if elapsed < l.interval {
			l.sleep(l.interval - elapsed)
		}
	}
	l.lastCall = l.now()
}

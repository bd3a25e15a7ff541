package player

import (
	"context"
	"sync"
	"time"
)

// Countdown is a single owned countdown task. It decrements an
// observable remaining-seconds counter and signals expiry through a
// one-shot channel; the signal cannot re-fire, and the counter never
// goes negative. The ticking loop survives unrelated state changes;
// nothing but Stop or context cancellation restarts or drifts it.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	fired     bool
	expired   chan struct{}
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewCountdown creates a countdown with the given budget in seconds.
func NewCountdown(seconds int) *Countdown {
	return &Countdown{
		remaining: seconds,
		expired:   make(chan struct{}),
		stop:      make(chan struct{}),
	}
}

// Start runs the one-second tick loop until expiry, Stop, or context
// cancellation.
func (c *Countdown) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.stop:
				return
			case <-ticker.C:
				if c.Tick() {
					return
				}
			}
		}
	}()
}

// Tick consumes one second. It returns true on the tick that reaches
// zero, closing the expiry channel exactly once; later ticks are
// no-ops.
func (c *Countdown) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fired || c.remaining <= 0 {
		return false
	}
	c.remaining--
	if c.remaining == 0 {
		c.fired = true
		close(c.expired)
		return true
	}
	return false
}

// Remaining reports the seconds left; never negative.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Expired is closed exactly once, when the countdown reaches zero.
func (c *Countdown) Expired() <-chan struct{} {
	return c.expired
}

// Stopped is closed when Stop is called; watchers select on it to
// exit alongside the tick loop.
func (c *Countdown) Stopped() <-chan struct{} {
	return c.stop
}

// Stop cancels the tick loop. Safe to call more than once.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

package timer

import (
	"context"
	"time"
)

// TickerClock is the production Clock: each subscription runs its own
// goroutine on a time.Ticker and stops when cancelled.
type TickerClock struct {
	Interval time.Duration
}

// NewTickerClock returns a clock ticking at the given interval, defaulting
// to one second.
func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = time.Second
	}
	return &TickerClock{Interval: interval}
}

type tickerSubscription struct {
	cancel context.CancelFunc
}

func (s *tickerSubscription) Cancel() {
	s.cancel()
}

// Subscribe starts delivering onTick once per interval until Cancel is
// called. Cancellation is asynchronous at the scheduler level; callers that
// need a hard boundary must discard late callbacks themselves (the Countdown
// does, via its generation stamp).
func (c *TickerClock) Subscribe(onTick func()) Subscription {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				onTick()
			}
		}
	}()

	return &tickerSubscription{cancel: cancel}
}

package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// autoTimer fires a callback every interval on its own goroutine until
// stopped.
type autoTimer struct {
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func startAutoTimer(parent context.Context, interval time.Duration, live *atomic.Int32, fire func(context.Context)) *autoTimer {
	ctx, cancel := context.WithCancel(parent)
	t := &autoTimer{
		interval: interval,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	live.Add(1)
	go func() {
		defer close(t.done)
		defer live.Add(-1)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A stop can race with a tick already selected.
				if ctx.Err() != nil {
					return
				}
				fire(ctx)
			}
		}
	}()
	return t
}

// stop cancels the timer and waits for its goroutine to exit. A refresh the
// timer started sees its context cancelled.
func (t *autoTimer) stop() {
	t.cancel()
	<-t.done
}

package app

import (
	"context"
	"time"
)

// StartPolling launches the background refresh loop. The loop wakes every
// interval and refreshes authored PRs, skipping the cycle silently when a
// fetch is already in flight (no queueing, no backlog). The stop signal is
// checked before and after every sleep so logout cancels promptly. Calling
// StartPolling while a loop is running restarts it.
func (a *App) StartPolling(interval time.Duration) {
	a.StopPolling()

	stop := make(chan struct{})
	done := make(chan struct{})
	a.mu.Lock()
	a.pollStop = stop
	a.pollDone = done
	a.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}

			select {
			case <-stop:
				return
			case <-time.After(interval):
			}

			select {
			case <-stop:
				return
			default:
			}

			if a.IsFetching() {
				continue
			}
			_ = a.RefreshAuthored(context.Background())
		}
	}()
}

// StopPolling signals the refresh loop to exit and waits for it.
func (a *App) StopPolling() {
	a.mu.Lock()
	stop, done := a.pollStop, a.pollDone
	a.pollStop, a.pollDone = nil, nil
	a.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

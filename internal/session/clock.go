package session

import (
	"sync"
	"time"
)

// Task is a repeating callback that can be cancelled.
type Task interface {
	Stop()
}

// Clock schedules repeating tasks. The session runs gravity and soft drop on it.
type Clock interface {
	Every(d time.Duration, fn func()) Task
}

// TickerClock runs each task on its own goroutine driven by a time.Ticker.
type TickerClock struct{}

// Every calls fn every d until the returned task is stopped. A callback that
// is already running when Stop is called still completes.
func (TickerClock) Every(d time.Duration, fn func()) Task {
	t := &tickerTask{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-t.done:
				return
			}
		}
	}()
	return t
}

type tickerTask struct {
	done     chan struct{}
	doneOnce sync.Once
}

// Stop is safe to call multiple times.
func (t *tickerTask) Stop() {
	t.doneOnce.Do(func() {
		close(t.done)
	})
}

package session

import (
	"sync"
	"time"
)

// clock calls tick on every interval until tick returns false or Stop is
// called. Stop does not wait for a tick in flight.
type clock struct {
	stop chan struct{}
	once sync.Once
}

func startClock(interval time.Duration, tick func() bool) *clock {
	c := &clock{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				if !tick() {
					return
				}
			}
		}
	}()
	return c
}

func (c *clock) Stop() {
	c.once.Do(func() { close(c.stop) })
}

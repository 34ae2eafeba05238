package incognito

import (
	"sync"
	"time"
)

// reaper calls sweep every interval until Stop.
type reaper struct {
	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func startReaper(interval time.Duration, sweep func()) *reaper {
	r := &reaper{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go r.loop(sweep)
	return r
}

func (r *reaper) loop(sweep func()) {
	defer close(r.done)
	defer r.ticker.Stop()

	for {
		select {
		case <-r.ticker.C:
			sweep()
		case <-r.stop:
			return
		}
	}
}

// Stop signals the loop and waits for it to return. An in-flight sweep
// finishes first.
func (r *reaper) Stop() {
	r.once.Do(func() { close(r.stop) })
	<-r.done
}

package utils

import (
	"sync"
	"time"
)

// Debouncer runs only the last of a burst of calls, after a quiet period.
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
}

// Debounce calls fn after duration, canceling any previous pending call.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Flush cancels a pending call and reports whether one was pending. Callers
// that need the pending work done run it themselves.
func (d *Debouncer) Flush() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

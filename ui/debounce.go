package ui

import (
	"sync"
	"time"
)

// Debouncer delays a function until calls stop arriving for the wait
// window. Trailing edge: every Call resets the pending timer, so only the
// most recent invocation within the window runs.
type Debouncer struct {
	mu    sync.Mutex
	fn    func()
	wait  time.Duration
	timer *time.Timer
}

// Debounce wraps fn with a trailing-edge debounce
func Debounce(fn func(), wait time.Duration) *Debouncer {
	return &Debouncer{fn: fn, wait: wait}
}

// Call schedules fn after the wait window, cancelling any pending run
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fn)
}

// Stop cancels any pending run
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

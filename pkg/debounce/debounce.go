package debounce

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of Trigger calls into a single callback on the
// trailing edge: the callback runs once the window elapses with no further
// triggers, and the last payload wins. Safe for concurrent use.
type Debouncer[T any] struct {
	mu       sync.Mutex
	window   time.Duration
	fn       func(T)
	timer    *time.Timer
	pending  T
	deadline time.Time
	armed    bool
	stopped  bool
}

func New[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{window: window, fn: fn}
}

// Trigger records the payload and restarts the wait window.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = v
	d.armed = true
	d.deadline = time.Now().Add(d.window)

	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.fire)
	} else {
		d.timer.Reset(d.window)
	}
}

// Flush delivers the pending payload immediately, if any.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.deadline = time.Time{}
	d.mu.Unlock()

	d.fire()
}

// Stop cancels any pending delivery. Further triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if d.stopped || !d.armed {
		d.mu.Unlock()
		return
	}

	// A trigger may have slipped in between the timer firing and this lock;
	// in that case the deadline moved and the wait starts over.
	if remaining := time.Until(d.deadline); remaining > 0 {
		d.timer.Reset(remaining)
		d.mu.Unlock()
		return
	}

	v := d.pending
	d.armed = false
	var zero T
	d.pending = zero
	fn := d.fn
	d.mu.Unlock()

	fn(v)
}

package backend

import (
	"sync"
	"time"
)

// Debouncer owns the single search timer of a screen. Arming it stops the
// previous timer and releases that timer's waiter, so at most one ticket can
// ever report that it fired.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	seq     uint64
	pending chan bool
	stopped bool
}

// Ticket is handed out by Arm. Wait blocks until the timer fires (true) or
// is superseded, cancelled or stopped (false).
type Ticket struct {
	Seq  uint64
	done <-chan bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay}
}

// Delay returns the configured quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Arm (re)starts the timer. The previous ticket, if any, is released with
// false.
func (d *Debouncer) Arm() Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.releaseLocked()
	d.seq++
	done := make(chan bool, 1)
	if d.stopped {
		done <- false
		return Ticket{Seq: d.seq, done: done}
	}
	d.pending = done
	current := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.seq != current || d.pending != done {
			return
		}
		d.pending = nil
		d.timer = nil
		done <- true
	})
	return Ticket{Seq: current, done: done}
}

// Cancel stops the pending timer without arming a new one.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.releaseLocked()
	d.seq++
}

// Stop cancels the pending timer and refuses further arming. Used on
// teardown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.releaseLocked()
	d.seq++
	d.stopped = true
}

// Pending reports whether a timer is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) releaseLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.pending != nil {
		d.pending <- false
		d.pending = nil
	}
}

// Wait blocks until the ticket resolves.
func (t Ticket) Wait() bool {
	if t.done == nil {
		return false
	}
	return <-t.done
}

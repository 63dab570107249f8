package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is used when New is given a non-positive delay.
const DefaultDelay = 100 * time.Millisecond

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The zero configuration uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock replaces the timer source (useful for tests).
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// Debouncer collapses bursts of Call into a single trailing invocation of fn
// with the most recent argument.
//
// A Debouncer owns at most one pending timer. Every Call stops and replaces
// it; Cancel clears it. fn runs on the clock's goroutine and never while the
// internal lock is held, so fn may call back into the Debouncer.
type Debouncer[T any] struct {
	mu    sync.Mutex
	fn    func(T)
	delay time.Duration
	clock Clock

	timer   Timer
	pending bool
	seq     uint64 // invalidates timers that fired but lost the race to the lock
}

// New returns a Debouncer that calls fn after delay of quiet.
//
// fn may be a method value; its bound receiver is used unchanged.
func New[T any](fn func(T), delay time.Duration, opts ...Option) *Debouncer[T] {
	o := options{clock: wallClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		fn:    fn,
		delay: delay,
		clock: o.clock,
	}
}

// Call schedules fn(arg) and discards any previously scheduled invocation.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = true

	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if !d.pending || d.seq != seq {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.timer = nil
		fn := d.fn
		d.mu.Unlock()

		if fn != nil {
			fn(arg)
		}
	})
}

// Cancel drops the pending invocation, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

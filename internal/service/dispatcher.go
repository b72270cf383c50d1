package service

import (
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/mission-control/internal/logger"
)

// dispatcher runs submitted closures one at a time, in submission order, on a
// single goroutine.
type dispatcher struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	// busy is set while a closure runs.
	busy atomic.Bool

	wake chan struct{}
	done chan struct{}

	logger *logger.Logger
}

func newDispatcher(log *logger.Logger) *dispatcher {
	d := &dispatcher{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: log,
	}
	go d.run()
	return d
}

// Submit enqueues fn. It returns false once the dispatcher is closed.
func (d *dispatcher) Submit(fn func()) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	d.signal()
	return true
}

// Close stops accepting work, drains the queue and waits for the goroutine to
// exit. Calling it from a dispatched closure deadlocks; use [dispatcher.Busy]
// to hand the wait to another goroutine.
func (d *dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.signal()
	<-d.done
}

// Busy reports whether a closure is running right now.
func (d *dispatcher) Busy() bool {
	return d.busy.Load()
}

func (d *dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *dispatcher) run() {
	defer close(d.done)

	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			closed := d.closed
			d.mu.Unlock()
			if closed {
				return
			}
			<-d.wake
			continue
		}
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.call(fn)
	}
}

func (d *dispatcher) call(fn func()) {
	d.busy.Store(true)
	defer d.busy.Store(false)
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Msg("dispatched callback panicked")
		}
	}()
	fn()
}

package motion

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// DefaultFPS is the frame rate used when none is given.
const DefaultFPS = 60

// ErrDriverRunning is returned by [Driver.Run] when the driver is already
// running.
var ErrDriverRunning = errors.New("driver already running")

// Frame is one rendered step of a driven counter.
type Frame struct {
	Value int64
	Done  bool
}

// Driver advances a [Counter] on frame ticks and hands each changed value to
// a render function.
//
// Rendering and retargeting both happen on the Run goroutine, so render is
// never called concurrently with itself and never sees a half-applied
// retarget.
type Driver struct {
	counter  Counter
	interval time.Duration
	render   func(Frame)
	now      func() time.Time

	retarget chan int64
	running  atomic.Bool
}

// NewDriver creates a driver for c at fps frames per second. The counter's
// Start is reset when Run begins.
func NewDriver(c Counter, fps int, render func(Frame)) (*Driver, error) {
	if render == nil {
		return nil, errors.New("render function is required")
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Driver{
		counter:  c,
		interval: time.Second / time.Duration(fps),
		render:   render,
		now:      time.Now,
		retarget: make(chan int64),
	}, nil
}

// Run renders frames until ctx is done. Once the counter settles the driver
// idles until the next [Driver.Retarget]. Run returns ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrDriverRunning
	}
	defer d.running.Store(false)

	c := d.counter
	c.Start = d.now()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	last := c.ValueAt(0)
	settled := c.Duration <= 0
	d.render(Frame{Value: last, Done: settled})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case end := <-d.retarget:
			c = c.Retarget(end, d.now())
			settled = false
			ticker.Reset(d.interval)

		case <-ticker.C:
			if settled {
				continue
			}
			now := d.now()
			v := c.Value(now)
			done := c.Done(now)
			if v != last || done {
				last = v
				d.render(Frame{Value: v, Done: done})
			}
			settled = done
		}
	}
}

// Retarget asks the running driver to ease toward end from its current
// value. It blocks until the driver accepts the request or ctx is done.
func (d *Driver) Retarget(ctx context.Context, end int64) error {
	select {
	case d.retarget <- end:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package motion

import (
	"errors"
	"math"
	"time"
)

// DefaultCounterDuration is how long a counter takes to reach its target.
const DefaultCounterDuration = 2 * time.Second

// Counter is a number easing from From to End over Duration, anchored at
// Start.
//
// Counter is a value: [Counter.Retarget] returns a new counter rather than
// changing the receiver, so a counter can be sampled from any goroutine.
type Counter struct {
	From     int64
	End      int64
	Duration time.Duration
	Ease     Easing
	Start    time.Time
}

// NewCounter returns a counter from 0 to end with the default duration and
// ease-out cubic easing, starting at start.
func NewCounter(end int64, start time.Time) Counter {
	return Counter{
		End:      end,
		Duration: DefaultCounterDuration,
		Ease:     EaseOutCubic,
		Start:    start,
	}
}

// ValueAt returns the displayed value after elapsed time.
//
// The value is From at or before zero, exactly End once elapsed reaches
// Duration, and the eased interpolation floored to an integer in between.
func (c Counter) ValueAt(elapsed time.Duration) int64 {
	if c.Duration <= 0 || elapsed >= c.Duration {
		return c.End
	}
	if elapsed <= 0 {
		return c.From
	}

	ease := c.Ease
	if ease == nil {
		ease = EaseOutCubic
	}
	p := ease(float64(elapsed) / float64(c.Duration))
	v := math.Floor(float64(c.From) + p*float64(c.End-c.From))

	// float rounding must never push the value past either bound
	lo, hi := c.From, c.End
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case v < float64(lo):
		return lo
	case v > float64(hi):
		return hi
	}
	return int64(v)
}

// Value returns the displayed value at wall time now.
func (c Counter) Value(now time.Time) int64 {
	return c.ValueAt(now.Sub(c.Start))
}

// Done reports whether the counter has settled on End at now.
func (c Counter) Done(now time.Time) bool {
	return now.Sub(c.Start) >= c.Duration
}

// Retarget restarts the timeline at now, easing from the currently displayed
// value toward end.
func (c Counter) Retarget(end int64, now time.Time) Counter {
	c.From = c.Value(now)
	c.End = end
	c.Start = now
	return c
}

// Samples returns the value at every frame of the animation at fps frames
// per second. The first entry is From and the last is exactly End.
func (c Counter) Samples(fps int) ([]int64, error) {
	if fps <= 0 {
		return nil, errors.New("fps must be positive")
	}
	if c.Duration <= 0 {
		return []int64{c.End}, nil
	}

	frame := time.Second / time.Duration(fps)
	n := int((c.Duration + frame - 1) / frame)

	out := make([]int64, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, c.ValueAt(time.Duration(i)*frame))
	}
	return append(out, c.End), nil
}

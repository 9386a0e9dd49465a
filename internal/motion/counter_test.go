package motion

import (
	"testing"
	"time"
)

func TestCounter_Endpoints(t *testing.T) {
	c := NewCounter(200, time.Time{})

	if got := c.ValueAt(0); got != 0 {
		t.Errorf("ValueAt(0) = %d, want 0", got)
	}
	if got := c.ValueAt(-time.Second); got != 0 {
		t.Errorf("ValueAt(-1s) = %d, want 0", got)
	}
	if got := c.ValueAt(2 * time.Second); got != 200 {
		t.Errorf("ValueAt(2s) = %d, want 200", got)
	}
	if got := c.ValueAt(time.Hour); got != 200 {
		t.Errorf("ValueAt(1h) = %d, want 200", got)
	}
}

func TestCounter_EasedMidpoint(t *testing.T) {
	c := NewCounter(200, time.Time{})

	// ease-out cubic at half time is 0.875
	if got := c.ValueAt(time.Second); got != 175 {
		t.Errorf("ValueAt(1s) = %d, want 175", got)
	}

	c.Ease = Linear
	if got := c.ValueAt(time.Second); got != 100 {
		t.Errorf("linear ValueAt(1s) = %d, want 100", got)
	}
	if got := c.ValueAt(1999 * time.Millisecond); got != 199 {
		t.Errorf("linear ValueAt(1.999s) = %d, want floored 199", got)
	}
}

func TestCounter_Monotone(t *testing.T) {
	for _, end := range []int64{0, 1, 50, 200, 774000, 50000000} {
		c := NewCounter(end, time.Time{})
		prev := int64(-1)
		for ms := 0; ms <= 2100; ms += 7 {
			v := c.ValueAt(time.Duration(ms) * time.Millisecond)
			if v < prev {
				t.Fatalf("end=%d: value decreased at %dms: %d < %d", end, ms, v, prev)
			}
			if v > end {
				t.Fatalf("end=%d: value %d overshot at %dms", end, v, ms)
			}
			prev = v
		}
		if prev != end {
			t.Errorf("end=%d: final value = %d", end, prev)
		}
	}
}

func TestCounter_CountsDown(t *testing.T) {
	c := Counter{From: 100, End: 40, Duration: time.Second, Ease: Linear}

	if got := c.ValueAt(500 * time.Millisecond); got != 70 {
		t.Errorf("ValueAt(0.5s) = %d, want 70", got)
	}
	if got := c.ValueAt(time.Second); got != 40 {
		t.Errorf("ValueAt(1s) = %d, want 40", got)
	}
}

func TestCounter_ZeroDuration(t *testing.T) {
	c := Counter{From: 3, End: 9}
	if got := c.ValueAt(0); got != 9 {
		t.Errorf("ValueAt(0) with zero duration = %d, want 9", got)
	}
}

func TestCounter_Retarget(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Counter{End: 100, Duration: 2 * time.Second, Ease: Linear, Start: start}

	mid := start.Add(time.Second)
	r := c.Retarget(300, mid)

	if r.From != 50 {
		t.Errorf("Retarget From = %d, want current value 50", r.From)
	}
	if r.End != 300 {
		t.Errorf("Retarget End = %d, want 300", r.End)
	}
	if got := r.Value(mid); got != 50 {
		t.Errorf("Value at retarget instant = %d, want 50 (no jump)", got)
	}
	if got := r.Value(mid.Add(2 * time.Second)); got != 300 {
		t.Errorf("Value after full duration = %d, want 300", got)
	}

	// original is unchanged
	if c.End != 100 || c.From != 0 {
		t.Errorf("receiver mutated: %+v", c)
	}
}

func TestCounter_Done(t *testing.T) {
	start := time.Now()
	c := NewCounter(10, start)

	if c.Done(start.Add(time.Second)) {
		t.Error("Done() = true halfway")
	}
	if !c.Done(start.Add(2 * time.Second)) {
		t.Error("Done() = false at duration")
	}
}

func TestCounter_Samples(t *testing.T) {
	c := NewCounter(50, time.Time{})

	// 50ms frames over 2s, plus the exact end value
	samples, err := c.Samples(20)
	if err != nil {
		t.Fatalf("Samples() error = %v", err)
	}
	if len(samples) != 41 {
		t.Fatalf("len(Samples(20)) = %d, want 41", len(samples))
	}
	if samples[0] != 0 {
		t.Errorf("first sample = %d, want 0", samples[0])
	}
	if samples[len(samples)-1] != 50 {
		t.Errorf("last sample = %d, want 50", samples[len(samples)-1])
	}
	for i := 1; i < len(samples); i++ {
		if samples[i] < samples[i-1] {
			t.Fatalf("samples decrease at %d", i)
		}
	}

	if _, err := c.Samples(0); err == nil {
		t.Error("Samples(0) expected error, got nil")
	}
}

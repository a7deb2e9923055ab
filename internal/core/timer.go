package core

import "time"

// FixedStep paces lattice updates independently of the frame rate. A zero
// interval means one update per call to Due.
type FixedStep struct {
	interval    time.Duration
	accumulator time.Duration
	last        time.Time
	maxBurst    int
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller with the given update interval.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{maxBurst: 64, now: time.Now}
	fs.SetInterval(interval)
	return fs
}

// SetInterval changes the delay between updates. It is safe to call from the
// main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval < 0 {
		interval = 0
	}
	f.interval = interval
	f.accumulator = 0
}

// Interval reports the configured delay between updates.
func (f *FixedStep) Interval() time.Duration { return f.interval }

// Due reports how many updates should run now. The count is capped so a
// stalled frame never triggers an unbounded burst of work.
func (f *FixedStep) Due() int {
	if f.interval == 0 {
		return 1
	}
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := int(f.accumulator / f.interval)
	if n > f.maxBurst {
		n = f.maxBurst
		f.accumulator = 0
		return n
	}
	f.accumulator -= time.Duration(n) * f.interval
	return n
}

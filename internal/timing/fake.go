package timing

import "time"

// Fake is a virtual clock for tests. Delay returns immediately and advances
// the clock by d.
type Fake struct {
	// Start is the time Now reports before any delay.
	Start time.Time

	// Elapsed is the sum of all delays so far.
	Elapsed time.Duration

	// Delays records every requested delay in order.
	Delays []time.Duration
}

// NewFake creates a Fake starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{Start: start}
}

// Delay records d and advances the clock.
func (f *Fake) Delay(d time.Duration) {
	f.Delays = append(f.Delays, d)
	f.Elapsed += d
}

// Now returns Start plus every delay so far.
func (f *Fake) Now() time.Time {
	return f.Start.Add(f.Elapsed)
}

// Reset clears recorded delays and rewinds the clock.
func (f *Fake) Reset() {
	f.Elapsed = 0
	f.Delays = nil
}

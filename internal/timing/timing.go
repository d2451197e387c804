// Package timing provides the blocking delay the game runs on.
package timing

import (
	"runtime"
	"time"
)

// DefaultSpinThreshold is the tail of every delay that is busy-waited.
// The kernel timer can overshoot a sleep by tens of microseconds, which
// detunes a square wave with sub-millisecond half periods.
const DefaultSpinThreshold = 200 * time.Microsecond

// Real blocks on the wall clock. Delays longer than SpinThreshold sleep for
// the bulk and busy-wait the remainder.
type Real struct {
	SpinThreshold time.Duration
}

// NewReal creates a Real delayer with DefaultSpinThreshold.
func NewReal() *Real {
	return &Real{SpinThreshold: DefaultSpinThreshold}
}

// Delay blocks for at least d.
func (r *Real) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	if d > r.SpinThreshold {
		time.Sleep(d - r.SpinThreshold)
	}
	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}

// Now returns the wall-clock time.
func (r *Real) Now() time.Time {
	return time.Now()
}

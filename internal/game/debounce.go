package game

import "time"

// Debouncer samples active-low buttons twice across a settle window.
type Debouncer struct {
	lines  Lines
	delay  Delayer
	settle time.Duration
}

// NewDebouncer creates a Debouncer with the given settle time.
func NewDebouncer(lines Lines, delay Delayer, settle time.Duration) *Debouncer {
	return &Debouncer{lines: lines, delay: delay, settle: settle}
}

// IsPressed reports whether line reads low, and still reads low after the
// settle time. It is a level check: a held button reports true on every call.
func (d *Debouncer) IsPressed(line int) bool {
	// low = pressed
	if d.lines.Level(line) {
		return false
	}
	d.delay.Delay(d.settle)
	return !d.lines.Level(line)
}

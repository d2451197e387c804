package gpio

import "fmt"

// Write is one recorded output change.
type Write struct {
	Line int
	High bool
}

// FakeBoard is a test double with scripted input levels and recorded writes.
type FakeBoard struct {
	// Samples contains scripted electrical levels per input line.
	// Each Read of a line consumes its next sample; once exhausted the last
	// sample repeats. Unscripted lines read high (released).
	Samples map[int][]bool

	// index tracks the current position in each line's samples
	index map[int]int

	// Levels holds the last level written to each output line.
	Levels map[int]bool

	// Writes records every Write call in order.
	Writes []Write

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error

	// WriteError, if set, will be returned by Write()
	WriteError error
}

// NewFakeBoard creates a FakeBoard with every line released.
func NewFakeBoard() *FakeBoard {
	return &FakeBoard{
		Samples: map[int][]bool{},
		index:   map[int]int{},
		Levels:  map[int]bool{},
	}
}

// Script replaces the samples of a line and rewinds it.
func (f *FakeBoard) Script(line int, levels ...bool) {
	f.Samples[line] = levels
	f.index[line] = 0
}

// Hold keeps an active-low button pressed until Release.
func (f *FakeBoard) Hold(line int) {
	f.Script(line, false)
}

// Release lets go of a button.
func (f *FakeBoard) Release(line int) {
	f.Script(line, true)
}

// Read returns the next scripted sample of line.
func (f *FakeBoard) Read(line int) (bool, error) {
	if f.ReadError != nil {
		return true, f.ReadError
	}

	samples := f.Samples[line]
	if len(samples) == 0 {
		return true, nil
	}

	i := f.index[line]
	if i < len(samples)-1 {
		f.index[line]++
	}
	return samples[i], nil
}

// Write records the level of an output line.
func (f *FakeBoard) Write(line int, high bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if line < 0 {
		return fmt.Errorf("invalid line %d", line)
	}
	f.Writes = append(f.Writes, Write{Line: line, High: high})
	f.Levels[line] = high
	return nil
}

// WritesTo returns the levels written to line, in order.
func (f *FakeBoard) WritesTo(line int) []bool {
	var levels []bool
	for _, w := range f.Writes {
		if w.Line == line {
			levels = append(levels, w.High)
		}
	}
	return levels
}

// Close marks the board as closed.
func (f *FakeBoard) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds all scripts and forgets writes.
func (f *FakeBoard) Reset() {
	for line := range f.index {
		f.index[line] = 0
	}
	f.Writes = nil
	f.Levels = map[int]bool{}
	f.Closed = false
}

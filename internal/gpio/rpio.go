//go:build linux

package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// RpioBoard drives lines through memory-mapped /dev/gpiomem. It is faster
// than the character device, which matters for the tone line on older Pis.
type RpioBoard struct {
	inputs  map[int]rpio.Pin
	outputs map[int]rpio.Pin
}

// NewRpioBoard maps GPIO memory and configures inputs with pull-up and
// outputs driven low. Only one RpioBoard may be open at a time.
func NewRpioBoard(inputs, outputs []int) (*RpioBoard, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpiomem: %w", err)
	}

	b := &RpioBoard{
		inputs:  map[int]rpio.Pin{},
		outputs: map[int]rpio.Pin{},
	}
	for _, n := range inputs {
		if n > 53 {
			rpio.Close()
			return nil, fmt.Errorf("input pin %d out of range", n)
		}
		p := rpio.Pin(n)
		p.Input()
		p.PullUp()
		b.inputs[n] = p
	}
	for _, n := range outputs {
		if n > 53 {
			rpio.Close()
			return nil, fmt.Errorf("output pin %d out of range", n)
		}
		p := rpio.Pin(n)
		p.Output()
		p.Low()
		b.outputs[n] = p
	}
	return b, nil
}

// Read returns the raw level of an input line.
func (b *RpioBoard) Read(line int) (bool, error) {
	p, ok := b.inputs[line]
	if !ok {
		return true, fmt.Errorf("pin %d not configured as input", line)
	}
	return p.Read() == rpio.High, nil
}

// Write sets the level of an output line.
func (b *RpioBoard) Write(line int, high bool) error {
	p, ok := b.outputs[line]
	if !ok {
		return fmt.Errorf("pin %d not configured as output", line)
	}
	if high {
		p.High()
	} else {
		p.Low()
	}
	return nil
}

// Close drives outputs low, returns every pin to input and unmaps memory.
func (b *RpioBoard) Close() error {
	for _, p := range b.outputs {
		p.Low()
		p.Input()
	}
	for _, p := range b.inputs {
		p.PullDown()
	}
	if err := rpio.Close(); err != nil {
		return fmt.Errorf("close gpiomem: %w", err)
	}
	return nil
}

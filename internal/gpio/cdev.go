//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevBoard drives lines through the Linux GPIO character device.
type CdevBoard struct {
	chip    *gpiocdev.Chip
	inputs  map[int]*gpiocdev.Line
	outputs map[int]*gpiocdev.Line
}

// NewCdevBoard requests inputs with pull-up and outputs driven low on the
// named chip (e.g. "gpiochip0").
func NewCdevBoard(chipName string, inputs, outputs []int) (*CdevBoard, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &CdevBoard{
		chip:    chip,
		inputs:  map[int]*gpiocdev.Line{},
		outputs: map[int]*gpiocdev.Line{},
	}

	// Buttons pull the line to ground, so inputs need the pull-up.
	for _, offset := range inputs {
		l, err := chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request input pin %d: %w", offset, err)
		}
		b.inputs[offset] = l
	}

	for _, offset := range outputs {
		l, err := chip.RequestLine(offset, gpiocdev.AsOutput(0))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request output pin %d: %w", offset, err)
		}
		b.outputs[offset] = l
	}

	return b, nil
}

// Read returns the raw level of an input line.
func (b *CdevBoard) Read(line int) (bool, error) {
	l, ok := b.inputs[line]
	if !ok {
		return true, fmt.Errorf("pin %d not requested as input", line)
	}
	v, err := l.Value()
	if err != nil {
		return true, fmt.Errorf("read pin %d: %w", line, err)
	}
	return v == 1, nil
}

// Write sets the level of an output line.
func (b *CdevBoard) Write(line int, high bool) error {
	l, ok := b.outputs[line]
	if !ok {
		return fmt.Errorf("pin %d not requested as output", line)
	}
	v := 0
	if high {
		v = 1
	}
	if err := l.SetValue(v); err != nil {
		return fmt.Errorf("write pin %d: %w", line, err)
	}
	return nil
}

// Close releases GPIO resources.
// Outputs are driven low and every pin is reconfigured to input with
// pull-down (matching Pi boot defaults) before closing, so lamps and the
// piezo are off once the process exits.
func (b *CdevBoard) Close() error {
	var errs []error

	for offset, l := range b.outputs {
		if err := l.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear pin %d: %w", offset, err))
		}
		if err := l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", offset, err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", offset, err))
		}
	}
	for offset, l := range b.inputs {
		if err := l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", offset, err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", offset, err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// CdevBoard is not available on non-Linux platforms.
type CdevBoard struct{}

// NewCdevBoard returns an error on non-Linux platforms.
func NewCdevBoard(chipName string, inputs, outputs []int) (*CdevBoard, error) {
	return nil, errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (b *CdevBoard) Read(line int) (bool, error) { return true, errUnsupported }

// Write is not implemented on non-Linux platforms.
func (b *CdevBoard) Write(line int, high bool) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (b *CdevBoard) Close() error { return nil }

// RpioBoard is not available on non-Linux platforms.
type RpioBoard struct{}

// NewRpioBoard returns an error on non-Linux platforms.
func NewRpioBoard(inputs, outputs []int) (*RpioBoard, error) {
	return nil, errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (b *RpioBoard) Read(line int) (bool, error) { return true, errUnsupported }

// Write is not implemented on non-Linux platforms.
func (b *RpioBoard) Write(line int, high bool) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (b *RpioBoard) Close() error { return nil }

// Package gpio provides digital line access with hardware abstraction.
// Real implementations use the Linux GPIO character device, /dev/gpiomem
// or a serial-attached button box. The fake implementation allows testing
// without hardware.
package gpio

import (
	"fmt"
	"strconv"
	"strings"
)

// Board reads and drives digital lines.
type Board interface {
	// Read returns the electrical level of an input line (true = high).
	// Buttons are wired active-low with a pull-up, so pressed reads false.
	Read(line int) (bool, error)

	// Write drives an output line high or low.
	Write(line int, high bool) error

	// Close drives outputs low and releases the lines.
	Close() error
}

// Default line numbers (BCM numbering), in target order.
var (
	DefaultLamps   = []int{17, 27, 22, 23}
	DefaultButtons = []int{5, 6, 13, 19}
)

// DefaultTone is the BCM line driving the piezo.
const DefaultTone = 18

// ParseLines parses a comma-separated list of line numbers.
func ParseLines(s string) ([]int, error) {
	var lines []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("parse line %q: %w", f, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("parse line %q: negative", f)
		}
		lines = append(lines, n)
	}
	return lines, nil
}

// FormatLines is the inverse of ParseLines.
func FormatLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}

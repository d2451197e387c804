package gpio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Button box wire protocol, one byte per message:
//
//	box -> host: line id on press, id|0x80 on release
//	host -> box: line id to drive high, id|0x80 to drive low, 255 keepalive
const (
	serialReleaseBit byte = 0x80
	serialKeepalive  byte = 255
	serialMaxLine         = 0x7e
)

// KeepaliveInterval is how often the host pings the box.
const KeepaliveInterval = 200 * time.Millisecond

// SerialBoard talks to a microcontroller button box over a serial port.
// The box reports button edges; SerialBoard keeps the resulting levels so
// Read never blocks.
type SerialBoard struct {
	port    io.ReadWriteCloser
	inputs  map[int]bool
	outputs map[int]bool

	mu      sync.Mutex
	pressed map[int]bool
	readErr error

	writeMu sync.Mutex
	done    chan struct{}
	wg      sync.WaitGroup
}

// OpenSerialBoard opens the named port (e.g. /dev/ttyACM0) at baud.
func OpenSerialBoard(name string, baud int, inputs, outputs []int) (*SerialBoard, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	b, err := NewSerialBoard(port, inputs, outputs, KeepaliveInterval)
	if err != nil {
		port.Close()
		return nil, err
	}
	return b, nil
}

// NewSerialBoard starts reading button edges from port. A keepalive of 0
// disables the keepalive pings.
func NewSerialBoard(port io.ReadWriteCloser, inputs, outputs []int, keepalive time.Duration) (*SerialBoard, error) {
	b := &SerialBoard{
		port:    port,
		inputs:  map[int]bool{},
		outputs: map[int]bool{},
		pressed: map[int]bool{},
		done:    make(chan struct{}),
	}
	for _, l := range inputs {
		if l > serialMaxLine {
			return nil, fmt.Errorf("input line %d out of range for button box", l)
		}
		b.inputs[l] = true
	}
	for _, l := range outputs {
		if l > serialMaxLine {
			return nil, fmt.Errorf("output line %d out of range for button box", l)
		}
		b.outputs[l] = true
	}

	b.wg.Add(1)
	go b.reader()
	if keepalive > 0 {
		b.wg.Add(1)
		go b.keepalive(keepalive)
	}
	return b, nil
}

func (b *SerialBoard) reader() {
	defer b.wg.Done()
	buf := make([]byte, 100)

	for {
		n, err := b.port.Read(buf)
		b.mu.Lock()
		for _, c := range buf[:n] {
			line := int(c &^ serialReleaseBit)
			if b.inputs[line] {
				b.pressed[line] = c&serialReleaseBit == 0
			}
		}
		if n == 0 && err == nil {
			err = io.EOF
		}
		if err != nil {
			b.readErr = err
			// nothing is held once the box is gone
			b.pressed = map[int]bool{}
		}
		b.mu.Unlock()
		if err != nil {
			return
		}
	}
}

func (b *SerialBoard) keepalive(every time.Duration) {
	defer b.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			if err := b.send(serialKeepalive); err != nil {
				return
			}
		}
	}
}

func (b *SerialBoard) send(c byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	_, err := b.port.Write([]byte{c})
	return err
}

// Read returns the level of a button line: low while the box reports it held.
func (b *SerialBoard) Read(line int) (bool, error) {
	if !b.inputs[line] {
		return true, fmt.Errorf("line %d is not a button box input", line)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.readErr != nil {
		return true, fmt.Errorf("button box: %w", b.readErr)
	}
	return !b.pressed[line], nil
}

// Write sends an output command to the box.
func (b *SerialBoard) Write(line int, high bool) error {
	if !b.outputs[line] {
		return fmt.Errorf("line %d is not a button box output", line)
	}
	c := byte(line)
	if !high {
		c |= serialReleaseBit
	}
	if err := b.send(c); err != nil {
		return fmt.Errorf("write line %d: %w", line, err)
	}
	return nil
}

// Close switches every output off, stops the keepalive and closes the port.
func (b *SerialBoard) Close() error {
	select {
	case <-b.done:
		return nil
	default:
	}

	var errs []error
	for l := range b.outputs {
		if err := b.Write(l, false); err != nil {
			errs = append(errs, err)
			break
		}
	}
	close(b.done)
	if err := b.port.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close port: %w", err))
	}
	b.wg.Wait()

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

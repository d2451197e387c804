package gpio

import (
	"net"
	"testing"
	"time"
)

func newTestSerialBoard(t *testing.T, keepalive time.Duration) (*SerialBoard, net.Conn) {
	t.Helper()
	host, box := net.Pipe()
	b, err := NewSerialBoard(host, []int{30, 32}, []int{10, 12}, keepalive)
	if err != nil {
		t.Fatalf("NewSerialBoard: %v", err)
	}
	t.Cleanup(func() {
		box.Close()
		b.Close()
	})
	return b, box
}

// waitLevel polls Read until it returns want or the deadline passes.
func waitLevel(t *testing.T, b *SerialBoard, line int, want bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		got, err := b.Read(line)
		if err != nil {
			t.Fatalf("Read(%d): %v", line, err)
		}
		if got == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("line %d never reached level %v", line, want)
}

func TestSerialBoardButtons(t *testing.T) {
	b, box := newTestSerialBoard(t, 0)

	if got, _ := b.Read(30); !got {
		t.Error("button should start released (high)")
	}

	box.Write([]byte{30})
	waitLevel(t, b, 30, false)

	if got, _ := b.Read(32); !got {
		t.Error("other button should stay released")
	}

	box.Write([]byte{30 | 0x80})
	waitLevel(t, b, 30, true)
}

func TestSerialBoardIgnoresUnknownButtons(t *testing.T) {
	b, box := newTestSerialBoard(t, 0)

	box.Write([]byte{31, 32})
	waitLevel(t, b, 32, false)

	if _, err := b.Read(31); err == nil {
		t.Error("expected error reading a line that is not an input")
	}
}

func TestSerialBoardWrite(t *testing.T) {
	b, box := newTestSerialBoard(t, 0)

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 2)
		n := 0
		for n < 2 {
			m, err := box.Read(buf[n:])
			if err != nil {
				return
			}
			n += m
		}
		got <- buf
	}()

	if err := b.Write(10, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := b.Write(12, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	select {
	case buf := <-got:
		if buf[0] != 10 || buf[1] != 12|0x80 {
			t.Errorf("bytes: got %v, want [10 140]", buf)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for writes")
	}

	if err := b.Write(30, true); err == nil {
		t.Error("expected error writing an input line")
	}
}

func TestSerialBoardKeepalive(t *testing.T) {
	_, box := newTestSerialBoard(t, 5*time.Millisecond)

	buf := make([]byte, 1)
	box.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := box.Read(buf); err != nil {
		t.Fatalf("read keepalive: %v", err)
	}
	if buf[0] != 255 {
		t.Errorf("keepalive: got %d, want 255", buf[0])
	}
}

func TestSerialBoardDisconnect(t *testing.T) {
	b, box := newTestSerialBoard(t, 0)

	box.Write([]byte{30})
	waitLevel(t, b, 30, false)
	box.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := b.Read(30); err != nil {
			level, _ := b.Read(30)
			if !level {
				t.Error("disconnected box should read released")
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("expected read error after disconnect")
}

func TestNewSerialBoardRejectsHighLines(t *testing.T) {
	host, box := net.Pipe()
	defer host.Close()
	defer box.Close()

	if _, err := NewSerialBoard(host, []int{200}, nil, 0); err == nil {
		t.Error("expected error for line above 126")
	}
}

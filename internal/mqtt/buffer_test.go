package mqtt

import (
	"testing"
)

func pushN(rb *ringBuffer, from, to int) {
	for i := from; i < to; i++ {
		rb.push(bufferedMsg{topic: Topic, payload: []byte{byte(i)}})
	}
}

func TestRingBufferDrain(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushed   int
		want     []byte
		dropped  int
	}{
		{"empty", 10, 0, nil, 0},
		{"partial", 10, 5, []byte{0, 1, 2, 3, 4}, 0},
		{"full", 4, 4, []byte{0, 1, 2, 3}, 0},
		{"overflow keeps newest", 5, 8, []byte{3, 4, 5, 6, 7}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := newRingBuffer(tt.capacity)
			pushN(rb, 0, tt.pushed)

			got := rb.drainAll()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d items, got %d", len(tt.want), len(got))
			}
			for i, m := range got {
				if m.payload[0] != tt.want[i] {
					t.Errorf("item %d: expected payload %d, got %d", i, tt.want[i], m.payload[0])
				}
			}
			if rb.dropped != tt.dropped {
				t.Errorf("dropped: got %d, want %d", rb.dropped, tt.dropped)
			}
			if again := rb.drainAll(); again != nil {
				t.Errorf("expected nil from second drain, got %d items", len(again))
			}
		})
	}
}

func TestRingBufferReuseAfterOverflow(t *testing.T) {
	rb := newRingBuffer(3)
	pushN(rb, 0, 5)
	rb.drainAll()

	if rb.overflow {
		t.Error("overflow flag should reset on drain")
	}

	pushN(rb, 10, 12)
	got := rb.drainAll()
	if len(got) != 2 || got[0].payload[0] != 10 || got[1].payload[0] != 11 {
		t.Errorf("second cycle: got %v", got)
	}
}

func TestRingBufferLen(t *testing.T) {
	rb := newRingBuffer(10)
	if rb.len() != 0 {
		t.Errorf("expected len 0, got %d", rb.len())
	}

	pushN(rb, 0, 2)
	if rb.len() != 2 {
		t.Errorf("expected len 2, got %d", rb.len())
	}

	rb.drainAll()
	if rb.len() != 0 {
		t.Errorf("expected len 0 after drain, got %d", rb.len())
	}
}

func TestRingBufferPreservesFields(t *testing.T) {
	rb := newRingBuffer(10)
	rb.push(bufferedMsg{
		topic:    TopicSystem,
		payload:  []byte(`{"test":true}`),
		qos:      1,
		retained: true,
	})

	got := rb.drainAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	m := got[0]
	if m.topic != TopicSystem || string(m.payload) != `{"test":true}` || m.qos != 1 || !m.retained {
		t.Errorf("fields not preserved: %+v", m)
	}
}

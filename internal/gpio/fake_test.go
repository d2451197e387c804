package gpio

import (
	"errors"
	"testing"
)

func TestFakeBoardRead(t *testing.T) {
	f := NewFakeBoard()
	f.Script(5, true, false, false)

	want := []bool{true, false, false, false}
	for i, w := range want {
		got, err := f.Read(5)
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: got %v, want %v", i, got, w)
		}
	}
}

func TestFakeBoardUnscriptedLineIsReleased(t *testing.T) {
	f := NewFakeBoard()

	got, err := f.Read(13)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("unscripted line should read high")
	}
}

func TestFakeBoardHoldRelease(t *testing.T) {
	f := NewFakeBoard()

	f.Hold(6)
	for i := 0; i < 3; i++ {
		if got, _ := f.Read(6); got {
			t.Fatalf("read %d: held line should read low", i)
		}
	}

	f.Release(6)
	if got, _ := f.Read(6); !got {
		t.Error("released line should read high")
	}
}

func TestFakeBoardReadError(t *testing.T) {
	f := NewFakeBoard()
	f.ReadError = errors.New("simulated error")

	_, err := f.Read(5)
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeBoardWrite(t *testing.T) {
	f := NewFakeBoard()

	f.Write(17, true)
	f.Write(18, true)
	f.Write(17, false)

	if f.Levels[17] {
		t.Error("line 17 should be low")
	}
	if !f.Levels[18] {
		t.Error("line 18 should be high")
	}
	got := f.WritesTo(17)
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("WritesTo(17): got %v", got)
	}
	if err := f.Write(-1, true); err == nil {
		t.Error("expected error for negative line")
	}
}

func TestFakeBoardWriteError(t *testing.T) {
	f := NewFakeBoard()
	f.WriteError = errors.New("simulated error")

	if err := f.Write(17, true); err == nil {
		t.Error("expected error to be returned")
	}
	if len(f.Writes) != 0 {
		t.Error("failed write should not be recorded")
	}
}

func TestFakeBoardCloseReset(t *testing.T) {
	f := NewFakeBoard()
	f.Script(5, false, true)
	f.Read(5)
	f.Write(17, true)

	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Reset()
	if f.Closed {
		t.Error("Reset should clear Closed")
	}
	if len(f.Writes) != 0 {
		t.Error("Reset should clear writes")
	}
	if got, _ := f.Read(5); got {
		t.Error("after reset: expected first sample again")
	}
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"17,27,22,23", []int{17, 27, 22, 23}, false},
		{" 5, 6 ,13,19 ", []int{5, 6, 13, 19}, false},
		{"", nil, false},
		{"1,,2", []int{1, 2}, false},
		{"1,x", nil, true},
		{"-3", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseLines(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLines(%q): err %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseLines(%q): got %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseLines(%q): got %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestFormatLines(t *testing.T) {
	if got := FormatLines(DefaultLamps); got != "17,27,22,23" {
		t.Errorf("FormatLines: got %q", got)
	}
}

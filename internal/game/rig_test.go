package game

import "time"

// window is a span of virtual time during which a button is held.
type window struct {
	from, to time.Duration
}

type write struct {
	at   time.Duration
	line int
	high bool
}

// rig is a virtual board and clock. Time only moves when Delay is called.
type rig struct {
	start   time.Time
	elapsed time.Duration
	held    map[int]bool
	windows map[int][]window
	levels  map[int]bool
	writes  []write
	delays  []time.Duration
	reads   int
}

func newRig() *rig {
	return &rig{
		start:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		held:    map[int]bool{},
		windows: map[int][]window{},
		levels:  map[int]bool{},
	}
}

func (r *rig) Level(line int) bool {
	r.reads++
	if r.held[line] {
		return false
	}
	for _, w := range r.windows[line] {
		if r.elapsed >= w.from && r.elapsed < w.to {
			return false
		}
	}
	return true
}

func (r *rig) Set(line int, high bool) {
	r.writes = append(r.writes, write{at: r.elapsed, line: line, high: high})
	r.levels[line] = high
}

func (r *rig) Delay(d time.Duration) {
	r.delays = append(r.delays, d)
	r.elapsed += d
}

func (r *rig) now() time.Time {
	return r.start.Add(r.elapsed)
}

func (r *rig) press(line int)   { r.held[line] = true }
func (r *rig) release(line int) { delete(r.held, line) }

// clear forgets recorded writes, delays and reads.
func (r *rig) clear() {
	r.writes = nil
	r.delays = nil
	r.reads = 0
}

func (r *rig) totalDelay() time.Duration {
	var total time.Duration
	for _, d := range r.delays {
		total += d
	}
	return total
}

func (r *rig) writesTo(line int) []bool {
	var levels []bool
	for _, w := range r.writes {
		if w.line == line {
			levels = append(levels, w.high)
		}
	}
	return levels
}

// seqSource returns scripted draws, repeating the last one.
type seqSource struct {
	draws []int
	calls int
}

func (s *seqSource) Intn(n int) int {
	i := s.calls
	if i >= len(s.draws) {
		i = len(s.draws) - 1
	}
	s.calls++
	return s.draws[i] % n
}

func testConfig() Config {
	cfg, err := NewConfig([]int{17, 27, 22, 23}, []int{5, 6, 13, 19}, 18)
	if err != nil {
		panic(err)
	}
	return cfg
}

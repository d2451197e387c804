package game

// Output drives lamp lines and the tone line.
// It remembers the last level written to each line so the tone line can be
// toggled without reading it back.
type Output struct {
	lines   Lines
	cfg     Config
	written map[int]bool
}

// NewOutput creates an Output for the configured lines.
func NewOutput(lines Lines, cfg Config) *Output {
	return &Output{lines: lines, cfg: cfg, written: map[int]bool{}}
}

// Set drives line high (active) or low.
func (o *Output) Set(line int, active bool) {
	o.lines.Set(line, active)
	o.written[line] = active
}

// Toggle inverts the last level written to line.
func (o *Output) Toggle(line int) {
	o.Set(line, !o.written[line])
}

// Lamp switches the lamp of target i.
func (o *Output) Lamp(i int, on bool) {
	o.Set(o.cfg.Targets[i].Lamp, on)
}

// Tone energizes or de-energizes the tone line.
func (o *Output) Tone(on bool) {
	o.Set(o.cfg.ToneLine, on)
}

// IsSet reports the last level written to line.
func (o *Output) IsSet(line int) bool {
	return o.written[line]
}

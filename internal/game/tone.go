package game

import "time"

// ToneGenerator plays square waves on the tone line.
type ToneGenerator struct {
	out   *Output
	delay Delayer
}

// NewToneGenerator creates a ToneGenerator.
func NewToneGenerator(out *Output, delay Delayer) *ToneGenerator {
	return &ToneGenerator{out: out, delay: delay}
}

// PlayTone toggles the tone line every halfPeriodUs until durationUs has
// elapsed, in half-period steps. The line is toggled ceil(durationUs /
// halfPeriodUs) times, so the tone lasts durationUs rounded up to a whole
// number of half periods. It blocks for the whole tone.
//
// halfPeriodUs must be >= 1.
func (g *ToneGenerator) PlayTone(halfPeriodUs, durationUs uint16) {
	if halfPeriodUs == 0 {
		panic("game: PlayTone with zero half period")
	}

	half := time.Duration(halfPeriodUs) * time.Microsecond
	line := g.out.cfg.ToneLine
	// uint32 so the accumulator cannot wrap past a u16 duration
	for elapsed := uint32(0); elapsed < uint32(durationUs); elapsed += uint32(halfPeriodUs) {
		g.delay.Delay(half)
		g.out.Toggle(line)
	}
}

// Toggles returns how many times PlayTone toggles the line for the given
// arguments.
func Toggles(halfPeriodUs, durationUs uint16) int {
	if halfPeriodUs == 0 {
		return 0
	}
	return int((uint32(durationUs) + uint32(halfPeriodUs) - 1) / uint32(halfPeriodUs))
}

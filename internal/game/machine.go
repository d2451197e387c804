package game

import (
	"math/rand"
	"time"
)

// Machine runs the play loop. It owns the session state: current target,
// phase, idle cycle counter and random source. It is not safe for
// concurrent use.
type Machine struct {
	cfg       Config
	out       *Output
	tone      *ToneGenerator
	debouncer *Debouncer
	delay     Delayer
	now       func() time.Time
	newSource func(seed int64) Source

	phase       Phase
	current     int
	cycles      uint32
	src         Source
	presentedAt time.Time
}

// Option customizes a Machine.
type Option func(*Machine)

// WithClock sets the time source used for event timestamps and reaction times.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithSourceFactory sets how the random source is built from the idle
// cycle counter when play starts.
func WithSourceFactory(f func(seed int64) Source) Option {
	return func(m *Machine) { m.newSource = f }
}

// NewMachine creates a Machine and puts the hardware in its idle state:
// target 0 lit, every other lamp off, tone line low.
// cfg must have passed Validate.
func NewMachine(cfg Config, lines Lines, delay Delayer, opts ...Option) *Machine {
	out := NewOutput(lines, cfg)
	m := &Machine{
		cfg:       cfg,
		out:       out,
		tone:      NewToneGenerator(out, delay),
		debouncer: NewDebouncer(lines, delay, SettleTime),
		delay:     delay,
		now:       time.Now,
		newSource: seedSource,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reset()
	return m
}

// seedSource is the default random source. The seed is the number of idle
// ticks before the start press, which has very little entropy: players with
// similar reaction time to the start lamp get correlated target sequences.
func seedSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

func (m *Machine) reset() {
	m.out.Tone(false)
	for i := range m.cfg.Targets {
		m.out.Lamp(i, i == 0)
	}
	m.phase = PhaseIdle
	m.current = 0
	m.cycles = 0
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Current returns the current target index.
func (m *Machine) Current() int {
	return m.current
}

// Cycles returns the number of idle ticks counted so far.
func (m *Machine) Cycles() uint32 {
	return m.cycles
}

// Step runs one action of the current phase and returns the events it
// produced. Blocking work (settle delays, tones, blinks) always runs to
// completion before Step returns.
func (m *Machine) Step() []Event {
	switch m.phase {
	case PhaseIdle:
		return m.idle()
	case PhasePresentTarget:
		return m.presentTarget()
	case PhaseAwaitResponse:
		return m.awaitResponse()
	case PhasePenalize:
		m.penalize()
	}
	return nil
}

// Run steps the machine until stop is closed, passing each non-empty batch of
// events to emit. stop is only checked between steps.
func (m *Machine) Run(stop <-chan struct{}, emit func([]Event)) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		if events := m.Step(); len(events) > 0 && emit != nil {
			emit(events)
		}
	}
}

func (m *Machine) idle() []Event {
	m.cycles++
	if !m.debouncer.IsPressed(m.cfg.Targets[m.current].Button) {
		return nil
	}
	m.src = m.newSource(int64(m.cycles))
	m.phase = PhasePresentTarget
	return []Event{m.event(EventStart, -1)}
}

func (m *Machine) presentTarget() []Event {
	m.out.Lamp(m.current, false)
	m.delay.Delay(SeparationDelay)

	m.current = int(NextTarget(m.src, TargetCount, uint8(m.current), MaxAttempts))
	m.out.Lamp(m.current, true)
	m.presentedAt = m.now()
	m.tone.PlayTone(m.cfg.Targets[m.current].HalfPeriodUs, ToneDurationUs)

	m.phase = PhaseAwaitResponse
	return []Event{m.event(EventTarget, -1)}
}

func (m *Machine) awaitResponse() []Event {
	pressed := m.firstPressed()
	if pressed < 0 {
		return nil
	}

	if pressed == m.current {
		e := m.event(EventCorrect, pressed)
		e.Reaction = e.Timestamp.Sub(m.presentedAt)
		m.phase = PhasePresentTarget
		return []Event{e}
	}

	m.phase = PhasePenalize
	return []Event{m.event(EventIncorrect, pressed)}
}

// firstPressed polls buttons in target order and returns the index of the
// first one pressed, or -1. Lower indices win when several are held, even if
// a later one is the current target.
func (m *Machine) firstPressed() int {
	for i, t := range m.cfg.Targets {
		if m.debouncer.IsPressed(t.Button) {
			return i
		}
	}
	return -1
}

func (m *Machine) penalize() {
	m.tone.PlayTone(ErrorHalfPeriodUs, ErrorDurationUs)

	m.blink()
	m.delay.Delay(BlinkDelay)
	m.blink()

	m.phase = PhaseAwaitResponse
}

func (m *Machine) blink() {
	m.out.Lamp(m.current, false)
	m.delay.Delay(BlinkDelay)
	m.out.Lamp(m.current, true)
}

func (m *Machine) event(t EventType, pressed int) Event {
	return Event{
		Timestamp: m.now(),
		Type:      t,
		Target:    m.current,
		Pressed:   pressed,
	}
}

// Package game contains the reaction-game logic: debounced button sampling,
// lamp and tone output, target selection and the play-loop state machine.
// This package has NO hardware, network or logging dependencies. Lines,
// delays, time and randomness are all injected.
package game

import (
	"fmt"
	"time"
)

// Lines is the digital I/O the game reads and drives.
// Levels are electrical: true = high. Buttons are active-low.
type Lines interface {
	Level(line int) bool
	Set(line int, high bool)
}

// Delayer blocks the calling goroutine for at least d.
type Delayer interface {
	Delay(d time.Duration)
}

// Source draws pseudo-random integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// TargetCount is the number of lamp/button pairs.
const TargetCount = 4

// Timing and tone constants. Durations given in microseconds are u16 values
// fed to PlayTone.
const (
	SettleTime      = 1000 * time.Microsecond
	SeparationDelay = 1 * time.Millisecond
	BlinkDelay      = 100 * time.Millisecond

	ToneDurationUs    uint16 = 0xF000 / 2
	ErrorHalfPeriodUs uint16 = 1043
	ErrorDurationUs   uint16 = 0xF000 / 2

	MaxAttempts uint8 = 10
)

// Target describes one lamp/button pair and its tone.
type Target struct {
	Lamp         int
	Button       int
	HalfPeriodUs uint16
}

// DefaultHalfPeriods are the tone half periods of targets 0-3 in µs.
var DefaultHalfPeriods = [TargetCount]uint16{929, 827, 781, 696}

// Config is the compiled-in wiring of the game.
type Config struct {
	Targets  [TargetCount]Target
	ToneLine int
}

// NewConfig builds a Config from lamp and button lines in target order,
// using DefaultHalfPeriods.
func NewConfig(lamps, buttons []int, toneLine int) (Config, error) {
	if len(lamps) != TargetCount {
		return Config{}, fmt.Errorf("need %d lamp lines, got %d", TargetCount, len(lamps))
	}
	if len(buttons) != TargetCount {
		return Config{}, fmt.Errorf("need %d button lines, got %d", TargetCount, len(buttons))
	}

	cfg := Config{ToneLine: toneLine}
	for i := range cfg.Targets {
		cfg.Targets[i] = Target{
			Lamp:         lamps[i],
			Button:       buttons[i],
			HalfPeriodUs: DefaultHalfPeriods[i],
		}
	}
	return cfg, cfg.Validate()
}

// Validate rejects wiring mistakes: negative or shared lines and zero half
// periods.
func (c Config) Validate() error {
	seen := map[int]string{}
	claim := func(line int, what string) error {
		if line < 0 {
			return fmt.Errorf("%s: invalid line %d", what, line)
		}
		if prev, ok := seen[line]; ok {
			return fmt.Errorf("%s: line %d already used by %s", what, line, prev)
		}
		seen[line] = what
		return nil
	}

	if err := claim(c.ToneLine, "tone"); err != nil {
		return err
	}
	for i, t := range c.Targets {
		if err := claim(t.Lamp, fmt.Sprintf("lamp %d", i)); err != nil {
			return err
		}
		if err := claim(t.Button, fmt.Sprintf("button %d", i)); err != nil {
			return err
		}
		if t.HalfPeriodUs == 0 {
			return fmt.Errorf("target %d: half period must be >= 1µs", i)
		}
	}
	return nil
}

// Lamps returns the lamp lines in target order.
func (c Config) Lamps() []int {
	lines := make([]int, 0, TargetCount)
	for _, t := range c.Targets {
		lines = append(lines, t.Lamp)
	}
	return lines
}

// Buttons returns the button lines in target order.
func (c Config) Buttons() []int {
	lines := make([]int, 0, TargetCount)
	for _, t := range c.Targets {
		lines = append(lines, t.Button)
	}
	return lines
}

// Phase is the state of the play loop.
type Phase string

const (
	PhaseIdle          Phase = "IDLE"
	PhasePresentTarget Phase = "PRESENT_TARGET"
	PhaseAwaitResponse Phase = "AWAIT_RESPONSE"
	PhasePenalize      Phase = "PENALIZE"
)

// EventType names something that happened during play.
type EventType string

const (
	EventStart     EventType = "START"
	EventTarget    EventType = "TARGET"
	EventCorrect   EventType = "CORRECT"
	EventIncorrect EventType = "INCORRECT"
)

// Event is emitted by Machine.Step.
type Event struct {
	Timestamp time.Time
	Type      EventType
	// Target is the current target when the event happened.
	// For TARGET it is the newly presented one.
	Target int
	// Pressed is the button index that decided CORRECT or INCORRECT, -1 otherwise.
	Pressed int
	// Reaction is the time from the target being presented to the press (CORRECT only).
	Reaction time.Duration
}

// Counts tracks the number of each outcome since startup.
type Counts struct {
	Rounds    int
	Correct   int
	Incorrect int
}

// Score is a point-in-time view of play statistics.
type Score struct {
	Counts       Counts
	Streak       int
	BestStreak   int
	LastReaction time.Duration
	BestReaction time.Duration
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Score     Score
}

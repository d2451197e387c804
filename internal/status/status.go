// Package status provides a thread-safe view of the running game for the
// HTTP status page and MQTT lifecycle events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/reaction-game/internal/game"
)

// NetworkInfo contains network state as reported by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains process configuration for display.
type Config struct {
	Backend     string
	Lamps       []int
	Buttons     []int
	ToneLine    int
	PollMs      int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
}

// Snapshot is a point-in-time view of the game.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Phase         game.Phase
	Target        int
	Started       bool
	Score         game.Score
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the process started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds the latest game state behind an RWMutex. The game loop
// writes it; HTTP handlers read it.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Phase:     game.PhaseIdle,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the phase, current target, started flag and score.
// Called from the game loop after every batch of events.
func (t *Tracker) Update(phase game.Phase, target int, started bool, score game.Score) {
	t.mu.Lock()
	t.snap.Phase = phase
	t.snap.Target = target
	t.snap.Started = started
	t.snap.Score = score
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the game state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

// Package mqtt publishes game telemetry to an MQTT broker, with an
// abstraction for testing. Telemetry is outbound only; nothing received from
// the broker affects play.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/reaction-game/internal/game"
)

// Topic is the MQTT topic for game events.
const Topic = "games/reaction/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "games/reaction/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a game event to the broker.
	// Returns error if publishing fails (should not stop the game).
	Publish(event game.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "RECONNECTED"
	Reason     string // e.g., "SIGTERM", "MQTT_DISCONNECT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Game GamePayload `json:"game"`
}

// GamePayload contains the game event details.
type GamePayload struct {
	Timestamp  string `json:"timestamp"`
	Event      string `json:"event"`
	Target     int    `json:"target"`
	Pressed    *int   `json:"pressed,omitempty"`
	ReactionMs *int64 `json:"reaction_ms,omitempty"`
}

// FormatPayload creates the JSON payload for a game event.
func FormatPayload(event game.Event) ([]byte, error) {
	payload := Payload{
		Game: GamePayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Target:    event.Target,
		},
	}
	if event.Pressed >= 0 {
		pressed := event.Pressed
		payload.Game.Pressed = &pressed
	}
	if event.Type == game.EventCorrect {
		ms := event.Reaction.Milliseconds()
		payload.Game.ReactionMs = &ms
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// NopPublisher discards everything. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(game.Event) error        { return nil }
func (NopPublisher) PublishSystem(SystemEvent) error { return nil }
func (NopPublisher) Close() error                    { return nil }

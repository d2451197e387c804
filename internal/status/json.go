package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Phase         string       `json:"phase"`
	Target        int          `json:"target"`
	Started       bool         `json:"started"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Score         ScoreJSON    `json:"score"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker,omitempty"`
}

// ScoreJSON is the JSON representation of play statistics.
type ScoreJSON struct {
	Rounds         int   `json:"rounds"`
	Correct        int   `json:"correct"`
	Incorrect      int   `json:"incorrect"`
	Streak         int   `json:"streak"`
	BestStreak     int   `json:"best_streak"`
	LastReactionMs int64 `json:"last_reaction_ms"`
	BestReactionMs int64 `json:"best_reaction_ms"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of process config.
type ConfigJSON struct {
	Backend     string `json:"backend"`
	Lamps       []int  `json:"lamps"`
	Buttons     []int  `json:"buttons"`
	ToneLine    int    `json:"tone_line"`
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker,omitempty"`
	HTTPAddr    string `json:"http_addr,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	phase := string(snap.Phase)
	if phase == "" {
		phase = "UNKNOWN"
	}

	inner := StatusInner{
		Phase:         phase,
		Target:        snap.Target,
		Started:       snap.Started,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Score: ScoreJSON{
			Rounds:         snap.Score.Counts.Rounds,
			Correct:        snap.Score.Counts.Correct,
			Incorrect:      snap.Score.Counts.Incorrect,
			Streak:         snap.Score.Streak,
			BestStreak:     snap.Score.BestStreak,
			LastReactionMs: snap.Score.LastReaction.Milliseconds(),
			BestReactionMs: snap.Score.BestReaction.Milliseconds(),
		},
		Config: ConfigJSON{
			Backend:     snap.Config.Backend,
			Lamps:       snap.Config.Lamps,
			Buttons:     snap.Config.Buttons,
			ToneLine:    snap.Config.ToneLine,
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}

	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

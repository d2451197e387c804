package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/sweeney/reaction-game/internal/game"
)

// ClientID identifies the game to the broker.
const ClientID = "reaction-game"

// BufferCapacity is how many messages are held while the broker is
// unreachable.
const BufferCapacity = 256

// RealPublisher publishes to an actual MQTT broker. Messages published while
// disconnected are buffered and replayed after reconnecting.
type RealPublisher struct {
	client paho.Client
	logger zerolog.Logger

	mu        sync.Mutex
	buffer    *ringBuffer
	connected bool // has connected at least once
}

// NewRealPublisher creates a publisher for the given broker. If the broker
// cannot be reached within the connect timeout the publisher is still
// returned: the client keeps retrying in the background and messages are
// buffered meanwhile.
func NewRealPublisher(broker string, logger zerolog.Logger) (*RealPublisher, error) {
	p := &RealPublisher{
		logger: logger,
		buffer: newRingBuffer(BufferCapacity),
	}

	will, err := FormatSystemPayload(SystemEvent{
		Timestamp: time.Now(),
		Event:     "SHUTDOWN",
		Reason:    "MQTT_DISCONNECT",
	})
	if err != nil {
		return nil, fmt.Errorf("format will: %w", err)
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(TopicSystem, string(will), 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			p.logger.Warn().Err(err).Msg("connection lost")
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		p.logger.Warn().Str("broker", broker).Msg("broker not reachable yet, buffering")
		return p, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return p, nil
}

func (p *RealPublisher) onConnect(c paho.Client) {
	p.mu.Lock()
	reconnect := p.connected
	p.connected = true
	pending := p.buffer.drainAll()
	p.mu.Unlock()

	p.logger.Info().Bool("reconnect", reconnect).Int("buffered", len(pending)).Msg("connected")

	if reconnect {
		payload, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "RECONNECTED"})
		c.Publish(TopicSystem, 1, false, payload).WaitTimeout(5 * time.Second)
	}
	for _, m := range pending {
		token := c.Publish(m.topic, m.qos, m.retained, m.payload)
		if !token.WaitTimeout(5 * time.Second) {
			p.logger.Warn().Str("topic", m.topic).Msg("replay timeout")
		}
	}
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnectionOpen() {
		p.mu.Lock()
		p.buffer.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		p.mu.Unlock()
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Publish sends a game event to the MQTT broker.
func (p *RealPublisher) Publish(event game.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 0 (at-most-once), not retained
	return p.publish(Topic, 0, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) - lifecycle events should arrive
	if err := p.publish(TopicSystem, 1, event.Retained, payload); err != nil {
		return fmt.Errorf("system: %w", err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}

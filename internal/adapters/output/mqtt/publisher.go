package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
	"echonet-alexa-bridge/internal/ports"
)

const (
	DefaultTopicPrefix = "echonet"

	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

// Publisher publishes the property reports of an endpoint as a retained
// message on "<prefix>/<endpointId>/state".
type Publisher struct {
	client pahomqtt.Client
	prefix string
	qos    byte
}

var _ ports.StatePublisher = (*Publisher)(nil)

type statePayload struct {
	EndpointID string           `json:"endpointId"`
	Properties []alexa.Property `json:"properties"`
}

// Connect dials the broker and returns a publisher using the connection.
func Connect(cfg model.MQTTConfig) (*Publisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timeout after %v", cfg.Broker, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.Broker, err)
	}
	return NewPublisher(client, cfg), nil
}

func NewPublisher(client pahomqtt.Client, cfg model.MQTTConfig) *Publisher {
	prefix := cfg.TopicPrefix
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &Publisher{client: client, prefix: prefix, qos: cfg.QoS}
}

func (p *Publisher) Topic(endpointID string) string {
	return p.prefix + "/" + endpointID + "/state"
}

func (p *Publisher) Publish(ctx context.Context, endpointID string, properties []alexa.Property) error {
	payload, err := json.Marshal(statePayload{EndpointID: endpointID, Properties: properties})
	if err != nil {
		return err
	}

	topic := p.Topic(endpointID)
	token := p.client.Publish(topic, p.qos, true, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish %s: %w", topic, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) Close() {
	p.client.Disconnect(disconnectQuiesce)
}

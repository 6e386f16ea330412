package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func newToken(err error, completed bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if completed {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient implements the publish side of pahomqtt.Client.
type fakeClient struct {
	pahomqtt.Client
	token        *fakeToken
	messages     []published
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token {
	c.messages = append(c.messages, published{topic, qos, retained, payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(quiesce uint) {
	c.disconnected = true
}

var reports = []alexa.Property{
	{Namespace: alexa.NamespacePower, Name: "powerState", Value: "ON", TimeOfSample: "2024-07-01T10:00:00.000+09:00"},
}

func TestPublisher_Publish(t *testing.T) {
	client := &fakeClient{token: newToken(nil, true)}
	p := NewPublisher(client, model.MQTTConfig{TopicPrefix: "home/ac", QoS: 1})

	require.NoError(t, p.Publish(context.Background(), "ac-1", reports))

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "home/ac/ac-1/state", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.True(t, msg.retained)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.payload, &body))
	assert.Equal(t, "ac-1", body["endpointId"])
	assert.Len(t, body["properties"], 1)
}

func TestPublisher_DefaultPrefix(t *testing.T) {
	p := NewPublisher(&fakeClient{}, model.MQTTConfig{})
	assert.Equal(t, "echonet/ac-1/state", p.Topic("ac-1"))
}

func TestPublisher_PublishError(t *testing.T) {
	client := &fakeClient{token: newToken(errors.New("not connected"), true)}
	p := NewPublisher(client, model.MQTTConfig{})

	err := p.Publish(context.Background(), "ac-1", reports)
	assert.ErrorContains(t, err, "not connected")
}

func TestPublisher_ContextCancelled(t *testing.T) {
	client := &fakeClient{token: newToken(nil, false)}
	p := NewPublisher(client, model.MQTTConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "ac-1", reports), context.Canceled)
}

func TestPublisher_Close(t *testing.T) {
	client := &fakeClient{}
	NewPublisher(client, model.MQTTConfig{}).Close()
	assert.True(t, client.disconnected)
}

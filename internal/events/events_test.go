package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func newFakeToken(err error, complete bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if complete {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                       { <-t.done; return true }
func (t *fakeToken) WaitTimeout(d time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}            { return t.done }
func (t *fakeToken) Error() error                     { return t.err }

// fakeClient only implements Publish and Disconnect; other calls panic.
type fakeClient struct {
	mqtt.Client
	topic        string
	payload      []byte
	token        *fakeToken
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topic = topic
	c.payload = payload.([]byte)
	return c.token
}

func (c *fakeClient) Disconnect(quiesce uint) { c.disconnected = true }

func TestMQTTPublisher_Topic(t *testing.T) {
	p := newMQTTPublisher(&fakeClient{}, "fleet/", time.Second)
	assert.Equal(t, "fleet/load/accepted", p.Topic(LoadAccepted))

	p = newMQTTPublisher(&fakeClient{}, "", time.Second)
	assert.Equal(t, "notification/created", p.Topic(NotificationCreated))
}

func TestMQTTPublisher_Publish(t *testing.T) {
	client := &fakeClient{token: newFakeToken(nil, true)}
	p := newMQTTPublisher(client, "fleet", time.Second)

	err := p.Publish(context.Background(), LoadAccepted, map[string]string{"load_id": "L1", "vehicle_id": "V1"})
	require.NoError(t, err)
	assert.Equal(t, "fleet/load/accepted", client.topic)

	var got map[string]string
	require.NoError(t, json.Unmarshal(client.payload, &got))
	assert.Equal(t, "V1", got["vehicle_id"])
}

func TestMQTTPublisher_PublishError(t *testing.T) {
	brokerErr := errors.New("not connected")
	client := &fakeClient{token: newFakeToken(brokerErr, true)}
	p := newMQTTPublisher(client, "fleet", time.Second)

	err := p.Publish(context.Background(), DocumentUploaded, map[string]string{})
	assert.ErrorIs(t, err, brokerErr)
}

func TestMQTTPublisher_PublishTimeout(t *testing.T) {
	client := &fakeClient{token: newFakeToken(nil, false)}
	p := newMQTTPublisher(client, "fleet", 10*time.Millisecond)

	err := p.Publish(context.Background(), TransactionRecorded, map[string]string{})
	assert.ErrorIs(t, err, ErrPublishTimeout)
}

func TestMQTTPublisher_Close(t *testing.T) {
	client := &fakeClient{}
	newMQTTPublisher(client, "fleet", time.Second).Close()
	assert.True(t, client.disconnected)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), LoadAccepted, nil))
	p.Close()
}

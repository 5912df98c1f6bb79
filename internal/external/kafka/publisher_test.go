package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"PayFlow/internal/messaging"
	"PayFlow/pkg/correlation"
	"PayFlow/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	// given
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(logger.Nop(), writer, "flow.events")
	env, err := messaging.NewEnvelope("flow-1", messaging.TypeSessionStarted, messaging.SessionStarted{FlowID: "flow-1"})
	require.NoError(t, err)
	ctx := correlation.WithFlowID(correlation.WithID(context.Background(), "corr-1"), "flow-1")

	// when
	err = p.Publish(ctx, env)

	// then
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "flow-1", string(msg.Key))

	var decoded messaging.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, env.EventID, decoded.EventID)
	assert.Equal(t, messaging.TypeSessionStarted, decoded.Type)
	assert.Equal(t, "flow-1", decoded.FlowID)
	assert.Equal(t, messaging.SchemaVersion, decoded.SchemaVersion)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "corr-1", headers[correlation.HeaderName])
	assert.Equal(t, "flow-1", headers[correlation.FlowHeaderName])
	assert.Equal(t, messaging.TypeSessionStarted, headers["event_type"])
}

func TestPublisher_PublishError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	p := NewPublisherWithWriter(logger.Nop(), writer, "flow.events")
	env, err := messaging.NewEnvelope("flow-1", messaging.TypePaymentSubmitted, messaging.PaymentSubmitted{})
	require.NoError(t, err)

	err = p.Publish(context.Background(), env)

	assert.EqualError(t, err, "broker down")
	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestNewWriter_FlushesWithoutWaitingForABatch(t *testing.T) {
	w := newWriter([]string{"localhost:9092"}, "flow.events")

	assert.Equal(t, "flow.events", w.Topic)
	assert.False(t, w.Async)
	assert.LessOrEqual(t, w.BatchTimeout, 50*time.Millisecond)
	assert.Positive(t, w.BatchTimeout)
	assert.Positive(t, w.WriteTimeout)
}

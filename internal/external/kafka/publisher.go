package kafka

import (
	"context"
	"encoding/json"
	"time"

	"PayFlow/internal/messaging"
	"PayFlow/pkg/correlation"
	"PayFlow/pkg/logger"
	"PayFlow/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements messaging.Publisher using Kafka.
type Publisher struct {
	writer MessageWriter
	topic  string
	logger *logger.Logger
}

var _ messaging.Publisher = (*Publisher)(nil)

const (
	// Publish runs inside request handlers and writes one message at a time,
	// so the writer flushes almost immediately instead of waiting for a batch.
	batchTimeout = 10 * time.Millisecond
	writeTimeout = 2 * time.Second
)

// NewPublisher creates a new Kafka publisher.
func NewPublisher(l *logger.Logger, brokers []string, topic string) *Publisher {
	return NewPublisherWithWriter(l, newWriter(brokers, topic), topic)
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}
}

func NewPublisherWithWriter(l *logger.Logger, writer MessageWriter, topic string) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: l,
	}
}

// Publish sends an envelope keyed by flow id, so events of one flow stay ordered.
func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(env.FlowID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.Type)},
		},
	}
	if corrID := correlation.FromContext(ctx); corrID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: correlation.HeaderName, Value: []byte(corrID)})
	}
	if flowID := correlation.FlowFromContext(ctx); flowID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: correlation.FlowHeaderName, Value: []byte(flowID)})
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(env.Type, "error").Inc()
		p.logger.Error("Failed to publish message: topic=%s key=%s error=%v",
			p.topic, env.FlowID, err)
		return err
	}

	metrics.EventsPublishedTotal.WithLabelValues(env.Type, "ok").Inc()
	p.logger.Debug("Message published: topic=%s key=%s event_id=%s",
		p.topic, env.FlowID, env.EventID)
	return nil
}

// Close closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

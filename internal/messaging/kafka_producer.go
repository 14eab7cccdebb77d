package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/guttosm/kit-service/internal/metrics"
)

// DefaultPublishTimeout bounds a single publish call. The writer is async, so
// this only applies while its queue is full.
const DefaultPublishTimeout = time.Second

// messageWriter is the subset of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer publishes assignment events keyed by kit id, so events for one
// kit stay ordered within a partition.
type KafkaProducer struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaProducer builds a producer writing to topic on brokers. Writes are
// async: publishing never waits for the broker, and delivery failures are
// reported by reportDelivery.
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
		Async:        true,
		Completion:   reportDelivery,
	}
	return newKafkaProducer(writer, DefaultPublishTimeout)
}

// reportDelivery logs and counts events the broker did not accept.
func reportDelivery(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, msg := range messages {
		eventType := headerValue(msg, "event-type")
		metrics.RecordEventPublished(eventType, "delivery_failed")
		log.Error().
			Err(err).
			Str("event_type", eventType).
			Str("kit_id", string(msg.Key)).
			Msg("Assignment event not delivered to kafka")
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func newKafkaProducer(writer messageWriter, timeout time.Duration) *KafkaProducer {
	return &KafkaProducer{writer: writer, timeout: timeout}
}

// PublishAssignmentEvent serializes the event and writes it with an event-type header.
func (p *KafkaProducer) PublishAssignmentEvent(ctx context.Context, event *AssignmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal assignment event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.KitID),
		Value: payload,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write assignment event to kafka: %w", err)
	}
	return nil
}

// Close flushes pending batches and releases the writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

var _ Publisher = (*KafkaProducer)(nil)

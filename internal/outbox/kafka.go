package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/wardpulse/realtime-gateway/config"
)

// Kafka publishes event records to a Kafka topic, keyed by event name so
// consumers see per-event ordering.
type Kafka struct {
	writer *kafka.Writer
}

// NewKafka returns a Kafka sink writing to cfg.Topic.
func NewKafka(cfg config.KafkaConfig) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 5 * time.Second,
			Async:        true,
		},
	}
}

// Publish implements Sink.
func (k *Kafka) Publish(ctx context.Context, rec Record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal event record: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.Event),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (k *Kafka) Close() error {
	return k.writer.Close()
}

package repository

import (
	"context"
	"fmt"

	"DropWatch/internal/domain/models"
	domrepo "DropWatch/internal/domain/repository"
	pkgkafka "DropWatch/pkg/kafka"
)

// KafkaTriggerPublisher fans trigger events out to a Kafka topic, keyed by
// symbol so per-symbol ordering holds across partitions.
type KafkaTriggerPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaTriggerPublisher(producer *pkgkafka.Producer, topic string) (*KafkaTriggerPublisher, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	return &KafkaTriggerPublisher{producer: producer, topic: topic}, nil
}

// Publish sends the run's events as one batch.
func (p *KafkaTriggerPublisher) Publish(ctx context.Context, events []models.TriggerEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, pkgkafka.Message{Key: []byte(e.Symbol), Value: e})
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish triggers: %w", err)
	}
	return nil
}

// Close closes the underlying producer.
func (p *KafkaTriggerPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.TriggerPublisher = (*KafkaTriggerPublisher)(nil)

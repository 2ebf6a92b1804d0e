package repository

import (
	"context"

	"SwingBasket/internal/domain/models"
	"SwingBasket/internal/domain/repository"
)

// keyedProducer is satisfied by *pkg/kafka.Producer.
type keyedProducer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaBasketPublisher implements BasketPublisher for Kafka.
// Events are keyed by ticker so baskets of one asset stay ordered.
type KafkaBasketPublisher struct {
	producer keyedProducer
	topic    string
}

// NewKafkaBasketPublisher creates Kafka publisher.
func NewKafkaBasketPublisher(producer keyedProducer, topic string) repository.BasketPublisher {
	return &KafkaBasketPublisher{producer: producer, topic: topic}
}

func (p *KafkaBasketPublisher) PublishBasket(ctx context.Context, evt models.BasketEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(evt.Ticker), evt)
}

func (p *KafkaBasketPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopBasketPublisher is used when Kafka is disabled.
type NoopBasketPublisher struct{}

func (NoopBasketPublisher) PublishBasket(context.Context, models.BasketEvent) error { return nil }

func (NoopBasketPublisher) Close() error { return nil }

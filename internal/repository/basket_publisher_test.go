package repository

import (
	"context"
	"testing"
	"time"

	"SwingBasket/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	topic  string
	key    []byte
	value  interface{}
	closed bool
}

func (r *recordingProducer) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	r.topic, r.key, r.value = topic, key, value
	return nil
}

func (r *recordingProducer) Close() error {
	r.closed = true
	return nil
}

func TestKafkaBasketPublisher(t *testing.T) {
	prod := &recordingProducer{}
	pub := NewKafkaBasketPublisher(prod, "basket.generated")

	evt := models.BasketEvent{
		BasketID:    "b-1",
		Ticker:      "PETR4",
		Orders:      2,
		GeneratedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, pub.PublishBasket(context.Background(), evt))

	assert.Equal(t, "basket.generated", prod.topic)
	assert.Equal(t, []byte("PETR4"), prod.key)
	assert.Equal(t, evt, prod.value)

	require.NoError(t, pub.Close())
	assert.True(t, prod.closed)
}

func TestNoopBasketPublisher(t *testing.T) {
	var pub NoopBasketPublisher
	assert.NoError(t, pub.PublishBasket(context.Background(), models.BasketEvent{}))
	assert.NoError(t, pub.Close())
}

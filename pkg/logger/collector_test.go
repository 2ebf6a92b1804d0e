package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedLogEntry
}

func (p *recordingPublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return nil
}

func TestCollector_AggregatesDuplicateErrors(t *testing.T) {
	pub := &recordingPublisher{}
	l := Nop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, Topic: "swingbasket.logs", Publisher: pub})

	for i := 0; i < 3; i++ {
		l.Error("fetch failed", String("ticker", "PETR4"), Error(errors.New("boom")))
	}
	l.Info("not collected")
	l.RemoveCollector()

	require.Len(t, pub.batches, 1)
	assert.Equal(t, "swingbasket.logs", pub.topic)
	batch := pub.batches[0]
	require.Len(t, batch, 1)
	assert.Equal(t, "error", batch[0].Level)
	assert.Equal(t, "fetch failed", batch[0].Message)
	assert.Equal(t, 3, batch[0].Count)
	assert.Equal(t, "PETR4", batch[0].Fields["ticker"])
	assert.Equal(t, "boom", batch[0].Fields["error"])
}

func TestCollector_FlushesAtThreshold(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 2, Publisher: pub})

	c.AddLog("error", "a", nil, "x.go:1")
	c.AddLog("error", "b", nil, "x.go:2")
	c.Close()

	require.Len(t, pub.batches, 1)
	assert.Len(t, pub.batches[0], 2)
}

func TestCollector_NoPublisherDropsEntries(t *testing.T) {
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour})
	c.AddLog("error", "a", nil, "x.go:1")
	c.Close()
}

package repository

import (
	"context"

	"SwingBasket/internal/domain/models"
)

// HistoryProvider fetches the trailing daily history for a provider symbol.
// It returns models.ErrTickerNotFound when the provider has no data.
type HistoryProvider interface {
	History(ctx context.Context, symbol string) (models.PriceHistory, error)
}

// SnapshotCache keeps market snapshots for the process lifetime.
// Entries never expire; Clear drops all of them.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (models.MarketSnapshot, bool, error)
	Put(ctx context.Context, key string, snap models.MarketSnapshot) error
	Clear(ctx context.Context) error
}

// BasketWriter persists baskets in the brokerage file format.
type BasketWriter interface {
	Write(orders []models.ClientOrder, ticker string) (string, error)
	Latest(ticker string) (string, error)
}

// BasketPublisher announces generated baskets to downstream systems.
type BasketPublisher interface {
	PublishBasket(ctx context.Context, evt models.BasketEvent) error
	Close() error
}

type Metrics interface {
	RecordValidation(ticker string, valid bool)
	RecordBasket(ticker string, orders int, invested float64)
	RecordCacheLookup(hit bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"SwingBasket/internal/domain/models"
	"SwingBasket/internal/service/cache"
	"SwingBasket/pkg/logger"
	"SwingBasket/pkg/metrics"
)

type stubProvider struct {
	hist  models.PriceHistory
	err   error
	calls int32
	last  string
}

func (s *stubProvider) History(_ context.Context, symbol string) (models.PriceHistory, error) {
	atomic.AddInt32(&s.calls, 1)
	s.last = symbol
	if s.err != nil {
		return models.PriceHistory{}, s.err
	}
	h := s.hist
	h.Symbol = symbol
	return h, nil
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (models.MarketSnapshot, bool, error) {
	return models.MarketSnapshot{}, false, errors.New("redis: connection refused")
}

func (failingCache) Put(context.Context, string, models.MarketSnapshot) error {
	return errors.New("redis: connection refused")
}

func (failingCache) Clear(context.Context) error { return nil }

type stubFetcher struct {
	snap models.MarketSnapshot
	err  error
}

func (s stubFetcher) Fetch(context.Context, string) (models.MarketSnapshot, error) {
	return s.snap, s.err
}

type stubWriter struct {
	calls  int
	orders []models.ClientOrder
	path   string
	err    error
}

func (w *stubWriter) Write(orders []models.ClientOrder, ticker string) (string, error) {
	w.calls++
	w.orders = orders
	if w.err != nil {
		return "", w.err
	}
	return w.path, nil
}

func (w *stubWriter) Latest(ticker string) (string, error) {
	if w.path == "" {
		return "", models.ErrBasketFileNotFound
	}
	return w.path, nil
}

type stubPublisher struct {
	events []models.BasketEvent
	err    error
}

func (p *stubPublisher) PublishBasket(_ context.Context, evt models.BasketEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

func (p *stubPublisher) Close() error { return nil }

// flatHistory returns n daily bars with constant close and volume.
func flatHistory(n int, closePx, volume float64) models.PriceHistory {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, n)
	for i := range bars {
		bars[i] = models.PriceBar{
			Time:   base.AddDate(0, 0, i),
			Open:   closePx,
			High:   closePx,
			Low:    closePx,
			Close:  closePx,
			Volume: volume,
		}
	}
	return models.PriceHistory{CompanyName: "Test Co", Bars: bars}
}

func newMarket(p *stubProvider) *MarketDataUseCase {
	return NewMarketDataUseCase(p, cache.NewMemoryCache(), metrics.Nop{}, logger.Nop())
}

func newValidator(snap models.MarketSnapshot, err error) *TradeValidatorUseCase {
	return NewTradeValidatorUseCase(stubFetcher{snap: snap, err: err}, DefaultRules(), metrics.Nop{}, logger.Nop())
}

func newAllocator() *AllocatorUseCase {
	return NewAllocatorUseCase(DefaultEligibility(), logger.Nop())
}

func mustTrade(ticker string, entry, stop, target float64) models.TradeSignal {
	t, err := models.NewTradeSignal(ticker, entry, stop, target)
	if err != nil {
		panic(err)
	}
	return t
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"SwingBasket/internal/domain/models"
	domrepo "SwingBasket/internal/domain/repository"
	applogger "SwingBasket/pkg/logger"
	"SwingBasket/pkg/util"
)

const (
	defaultExchangeSuffix = ".SA"
	defaultWindow         = 20
	unknownSector         = "N/A"
)

// MarketDataUseCase resolves tickers to liquidity snapshots, caching each one
// for the process lifetime.
type MarketDataUseCase struct {
	provider domrepo.HistoryProvider
	cache    domrepo.SnapshotCache
	metrics  domrepo.Metrics
	log      *applogger.Logger
	suffix   string
	window   int
}

// MarketDataOption configures MarketDataUseCase.
type MarketDataOption func(*MarketDataUseCase)

// WithExchangeSuffix sets the suffix appended to bare tickers (".SA" for B3).
func WithExchangeSuffix(suffix string) MarketDataOption {
	return func(uc *MarketDataUseCase) {
		if suffix != "" {
			uc.suffix = strings.ToUpper(suffix)
		}
	}
}

// WithAverageWindow sets how many trailing bars feed the averages.
func WithAverageWindow(n int) MarketDataOption {
	return func(uc *MarketDataUseCase) {
		if n > 0 {
			uc.window = n
		}
	}
}

func NewMarketDataUseCase(provider domrepo.HistoryProvider, cache domrepo.SnapshotCache, metrics domrepo.Metrics, log *applogger.Logger, opts ...MarketDataOption) *MarketDataUseCase {
	uc := &MarketDataUseCase{
		provider: provider,
		cache:    cache,
		metrics:  metrics,
		log:      log,
		suffix:   defaultExchangeSuffix,
		window:   defaultWindow,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProviderSymbol trims and uppercases ticker and appends the exchange suffix
// unless the ticker already carries it.
func (uc *MarketDataUseCase) ProviderSymbol(ticker string) string {
	t := models.NormalizeTicker(ticker)
	if strings.Contains(t, uc.suffix) {
		return t
	}
	return t + uc.suffix
}

// Fetch returns the snapshot for ticker. A cached snapshot is returned as is.
// models.ErrTickerNotFound means the provider has no data for the ticker.
func (uc *MarketDataUseCase) Fetch(ctx context.Context, ticker string) (models.MarketSnapshot, error) {
	symbol := uc.ProviderSymbol(ticker)
	if symbol == uc.suffix {
		return models.MarketSnapshot{}, fmt.Errorf("%w: ticker cannot be empty", models.ErrInvalidTrade)
	}

	snap, ok, err := uc.cache.Get(ctx, symbol)
	if err != nil {
		uc.log.Warn("snapshot cache get failed",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	}
	uc.metrics.RecordCacheLookup(ok)
	if ok {
		return snap, nil
	}

	uc.log.Info("fetching market data", applogger.String("symbol", symbol))
	start := time.Now()
	hist, err := uc.provider.History(ctx, symbol)
	uc.metrics.RecordLatency("market_data_fetch", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, models.ErrTickerNotFound) {
			uc.log.Warn("no market data found", applogger.String("symbol", symbol))
			return models.MarketSnapshot{}, err
		}
		uc.metrics.RecordError("market_data")
		return models.MarketSnapshot{}, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	if len(hist.Bars) == 0 {
		return models.MarketSnapshot{}, fmt.Errorf("%s: %w", symbol, models.ErrTickerNotFound)
	}

	snap = BuildSnapshot(models.NormalizeTicker(ticker), symbol, hist, uc.window)

	if err := uc.cache.Put(ctx, symbol, snap); err != nil {
		uc.log.Warn("snapshot cache put failed",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	}

	uc.log.Info("market data fetched",
		applogger.String("symbol", symbol),
		applogger.String("liquidity", "R$ "+util.FormatMoney(snap.DailyLiquidity)),
	)
	return snap, nil
}

// DailyLiquidity returns only the liquidity figure for ticker.
func (uc *MarketDataUseCase) DailyLiquidity(ctx context.Context, ticker string) (float64, error) {
	snap, err := uc.Fetch(ctx, ticker)
	if err != nil {
		return 0, err
	}
	return snap.DailyLiquidity, nil
}

// CurrentPrice returns only the last close for ticker.
func (uc *MarketDataUseCase) CurrentPrice(ctx context.Context, ticker string) (float64, error) {
	snap, err := uc.Fetch(ctx, ticker)
	if err != nil {
		return 0, err
	}
	return snap.CurrentPrice, nil
}

// ClearCache drops every cached snapshot.
func (uc *MarketDataUseCase) ClearCache(ctx context.Context) error {
	if err := uc.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear snapshot cache: %w", err)
	}
	uc.log.Info("snapshot cache cleared")
	return nil
}

// BuildSnapshot derives the liquidity figures from a non-empty history.
// Averages use the trailing window bars (all bars when fewer are available).
func BuildSnapshot(ticker, symbol string, hist models.PriceHistory, window int) models.MarketSnapshot {
	bars := hist.Bars
	tail := bars
	if window > 0 && len(tail) > window {
		tail = tail[len(tail)-window:]
	}

	var sumVol, sumClose float64
	for _, b := range tail {
		sumVol += b.Volume
		sumClose += b.Close
	}
	n := float64(len(tail))
	avgVolume := sumVol / n
	avgPrice := sumClose / n

	last := bars[len(bars)-1]
	change := 0.0
	if len(bars) > 1 {
		if prev := bars[len(bars)-2].Close; prev != 0 {
			change = (last.Close/prev - 1) * 100
		}
	}

	company := hist.CompanyName
	if company == "" {
		company = ticker
	}
	sector := hist.Sector
	if sector == "" {
		sector = unknownSector
	}

	return models.MarketSnapshot{
		Ticker:             ticker,
		ProviderTicker:     symbol,
		CurrentPrice:       last.Close,
		AverageDailyVolume: avgVolume,
		DailyLiquidity:     avgVolume * avgPrice,
		OpenPrice:          last.Open,
		HighPrice:          last.High,
		LowPrice:           last.Low,
		ChangePercent:      change,
		CompanyName:        company,
		Sector:             sector,
	}
}

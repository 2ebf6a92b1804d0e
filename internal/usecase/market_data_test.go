package usecase

import (
	"context"
	"errors"
	"testing"

	"SwingBasket/internal/domain/models"
	"SwingBasket/pkg/logger"
	"SwingBasket/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderSymbol(t *testing.T) {
	uc := newMarket(&stubProvider{})

	assert.Equal(t, "PETR4.SA", uc.ProviderSymbol(" petr4 "))
	assert.Equal(t, "PETR4.SA", uc.ProviderSymbol("petr4.sa"))
	assert.Equal(t, "VALE3.SA", uc.ProviderSymbol("VALE3.SA"))
}

func TestBuildSnapshot_TrailingWindow(t *testing.T) {
	hist := flatHistory(22, 10, 1_000)
	// The two oldest bars fall outside the 20-bar window.
	hist.Bars[0].Volume = 1_000_000
	hist.Bars[1].Close = 500
	hist.Bars[20].Close = 20
	hist.Bars[21].Close = 22
	hist.Bars[21].Open = 21
	hist.Bars[21].High = 23
	hist.Bars[21].Low = 19

	snap := BuildSnapshot("PETR4", "PETR4.SA", hist, 20)

	assert.Equal(t, "PETR4", snap.Ticker)
	assert.Equal(t, "PETR4.SA", snap.ProviderTicker)
	assert.Equal(t, 22.0, snap.CurrentPrice)
	assert.Equal(t, 1_000.0, snap.AverageDailyVolume)
	assert.InDelta(t, 1_000*(18*10.0+20+22)/20, snap.DailyLiquidity, 1e-6)
	assert.InDelta(t, 10.0, snap.ChangePercent, 1e-9)
	assert.Equal(t, 21.0, snap.OpenPrice)
	assert.Equal(t, 23.0, snap.HighPrice)
	assert.Equal(t, 19.0, snap.LowPrice)
	assert.Equal(t, "Test Co", snap.CompanyName)
	assert.Equal(t, "N/A", snap.Sector)
}

func TestBuildSnapshot_SingleBar(t *testing.T) {
	hist := flatHistory(1, 15, 2_000_000)
	hist.CompanyName = ""

	snap := BuildSnapshot("ABEV3", "ABEV3.SA", hist, 20)

	assert.Equal(t, 0.0, snap.ChangePercent)
	assert.Equal(t, 15.0, snap.CurrentPrice)
	assert.Equal(t, 30_000_000.0, snap.DailyLiquidity)
	assert.Equal(t, "ABEV3", snap.CompanyName)
}

func TestFetch_CachesSnapshot(t *testing.T) {
	p := &stubProvider{hist: flatHistory(25, 20, 2_000_000)}
	uc := newMarket(p)
	ctx := context.Background()

	first, err := uc.Fetch(ctx, "petr4")
	require.NoError(t, err)
	second, err := uc.Fetch(ctx, "PETR4.SA")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), p.calls)
	assert.Equal(t, "PETR4.SA", p.last)
	assert.Equal(t, 40_000_000.0, first.DailyLiquidity)
}

func TestFetch_ClearCacheRefetches(t *testing.T) {
	p := &stubProvider{hist: flatHistory(5, 20, 1_000)}
	uc := newMarket(p)
	ctx := context.Background()

	_, err := uc.Fetch(ctx, "PETR4")
	require.NoError(t, err)
	require.NoError(t, uc.ClearCache(ctx))
	require.NoError(t, uc.ClearCache(ctx))
	_, err = uc.Fetch(ctx, "PETR4")
	require.NoError(t, err)

	assert.Equal(t, int32(2), p.calls)
}

func TestFetch_NotFound(t *testing.T) {
	p := &stubProvider{err: models.ErrTickerNotFound}
	uc := newMarket(p)

	_, err := uc.Fetch(context.Background(), "XXXX3")
	assert.ErrorIs(t, err, models.ErrTickerNotFound)
}

func TestFetch_EmptyHistoryIsNotFound(t *testing.T) {
	p := &stubProvider{hist: models.PriceHistory{}}
	uc := newMarket(p)

	_, err := uc.Fetch(context.Background(), "XXXX3")
	assert.ErrorIs(t, err, models.ErrTickerNotFound)
}

func TestFetch_TransportErrorPropagates(t *testing.T) {
	boom := errors.New("dial tcp: i/o timeout")
	uc := newMarket(&stubProvider{err: boom})

	_, err := uc.Fetch(context.Background(), "PETR4")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, models.ErrTickerNotFound)
}

func TestFetch_CacheErrorFallsBackToProvider(t *testing.T) {
	p := &stubProvider{hist: flatHistory(3, 10, 100)}
	uc := NewMarketDataUseCase(p, failingCache{}, metrics.Nop{}, logger.Nop())

	snap, err := uc.Fetch(context.Background(), "PETR4")
	require.NoError(t, err)
	assert.Equal(t, 10.0, snap.CurrentPrice)
}

func TestAccessors(t *testing.T) {
	uc := newMarket(&stubProvider{hist: flatHistory(3, 10, 100)})
	ctx := context.Background()

	liq, err := uc.DailyLiquidity(ctx, "PETR4")
	require.NoError(t, err)
	assert.Equal(t, 1_000.0, liq)

	px, err := uc.CurrentPrice(ctx, "PETR4")
	require.NoError(t, err)
	assert.Equal(t, 10.0, px)
}

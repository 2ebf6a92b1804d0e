package usecase

import (
	"context"
	"errors"
	"testing"

	"SwingBasket/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liquidSnapshot() models.MarketSnapshot {
	return models.MarketSnapshot{
		Ticker:             "PETR4",
		ProviderTicker:     "PETR4.SA",
		CurrentPrice:       20,
		AverageDailyVolume: 2_000_000,
		DailyLiquidity:     40_000_000,
	}
}

func TestEvaluate_Approved(t *testing.T) {
	uc := newValidator(models.MarketSnapshot{}, nil)
	snap := liquidSnapshot()

	res := uc.Evaluate(mustTrade("PETR4", 20, 19, 21.5), &snap)

	assert.True(t, res.Valid)
	assert.InDelta(t, 0.05, res.StopLossPercent, 1e-12)
	assert.InDelta(t, 1.5, res.RiskRewardRatio, 1e-12)
	assert.Equal(t, int64(20_000), res.MaxQuantity)
	assert.Equal(t, 40_000_000.0, res.DailyLiquidity)
	assert.Equal(t, []string{
		"✅ Trade APPROVED for PETR4",
		"✅ Daily liquidity OK: R$ 40,000,000.00",
		"✅ Stop loss OK: 5.00%",
		"✅ Risk/Reward ratio OK: 1:1.50",
		"ℹ️ Maximum quantity per operation: 20,000 shares (1.0% of daily volume)",
	}, res.Messages)
}

func TestEvaluate_RejectedOnEveryRule(t *testing.T) {
	uc := newValidator(models.MarketSnapshot{}, nil)
	snap := models.MarketSnapshot{AverageDailyVolume: 150_050, DailyLiquidity: 12_345_678.9}

	res := uc.Evaluate(mustTrade("MGLU3", 10, 9, 10.5), &snap)

	assert.False(t, res.Valid)
	assert.Equal(t, int64(1_500), res.MaxQuantity)
	assert.Equal(t, []string{
		"❌ Trade REJECTED for MGLU3",
		"❌ Insufficient daily liquidity: R$ 12,345,678.90 (minimum required: R$ 30,000,000.00)",
		"❌ Stop loss too high: 10.00% (maximum allowed: 8.00%)",
		"❌ Low Risk/Reward ratio: 1:0.50 (minimum required: 1:1.33)",
		"ℹ️ Maximum quantity per operation: 1,500 shares (1.0% of daily volume)",
	}, res.Messages)
}

func TestEvaluate_Boundaries(t *testing.T) {
	uc := newValidator(models.MarketSnapshot{}, nil)
	snap := models.MarketSnapshot{AverageDailyVolume: 1_000_000, DailyLiquidity: 30_000_000}

	// Liquidity at the minimum and stop exactly 8% away both pass.
	res := uc.Evaluate(mustTrade("ITUB4", 25, 23, 28), &snap)

	assert.True(t, res.Valid, res.Messages)
	assert.Equal(t, "✅ Daily liquidity OK: R$ 30,000,000.00", res.Messages[1])
	assert.Equal(t, "✅ Stop loss OK: 8.00%", res.Messages[2])
}

func TestEvaluate_RiskRewardAtMinimum(t *testing.T) {
	uc := newValidator(models.MarketSnapshot{}, nil)
	snap := liquidSnapshot()

	// 1.33 / 1.00 in float64 lands just under 1.33; the ratio must still pass.
	res := uc.Evaluate(mustTrade("PETR4", 100, 99, 101.33), &snap)

	assert.True(t, res.Valid, res.Messages)
	assert.InDelta(t, 1.33, res.RiskRewardRatio, 1e-12)
	assert.InDelta(t, 0.01, res.StopLossPercent, 1e-12)
	assert.Equal(t, "✅ Risk/Reward ratio OK: 1:1.33", res.Messages[3])
}

func TestEvaluate_RiskRewardJustBelowMinimum(t *testing.T) {
	uc := newValidator(models.MarketSnapshot{}, nil)
	snap := liquidSnapshot()

	res := uc.Evaluate(mustTrade("PETR4", 100, 99, 101.32), &snap)

	assert.False(t, res.Valid)
	assert.Equal(t, "❌ Low Risk/Reward ratio: 1:1.32 (minimum required: 1:1.33)", res.Messages[3])
}

func TestEvaluate_ZeroRiskGivesZeroRatio(t *testing.T) {
	uc := newValidator(models.MarketSnapshot{}, nil)
	snap := liquidSnapshot()

	// Bypasses NewTradeSignal to reach the zero-risk branch.
	res := uc.Evaluate(models.TradeSignal{Ticker: "PETR4", EntryPrice: 20, StopLoss: 20, Target: 25}, &snap)

	assert.False(t, res.Valid)
	assert.Equal(t, 0.0, res.RiskRewardRatio)
}

func TestEvaluate_NoMarketData(t *testing.T) {
	uc := newValidator(models.MarketSnapshot{}, nil)

	res := uc.Evaluate(mustTrade("XXXX3", 20, 19, 22), nil)

	assert.Equal(t, models.ValidationResult{
		Messages: []string{"❌ Could not fetch market data for XXXX3"},
	}, res)
}

func TestEvaluate_CustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.MinRiskReward = 2
	uc := NewTradeValidatorUseCase(stubFetcher{}, rules, nil, nil)
	snap := liquidSnapshot()

	res := uc.Evaluate(mustTrade("PETR4", 20, 19, 21.5), &snap)

	assert.False(t, res.Valid)
	assert.Equal(t, "❌ Low Risk/Reward ratio: 1:1.50 (minimum required: 1:2.00)", res.Messages[3])
}

func TestValidate_TickerNotFoundIsRejection(t *testing.T) {
	uc := newValidator(models.MarketSnapshot{}, models.ErrTickerNotFound)

	res, err := uc.Validate(context.Background(), mustTrade("XXXX3", 20, 19, 22))

	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"❌ Could not fetch market data for XXXX3"}, res.Messages)
}

func TestValidate_TransportErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	uc := newValidator(models.MarketSnapshot{}, boom)

	_, err := uc.Validate(context.Background(), mustTrade("PETR4", 20, 19, 22))

	assert.ErrorIs(t, err, boom)
}

func TestValidate_UsesSnapshot(t *testing.T) {
	uc := newValidator(liquidSnapshot(), nil)

	res, err := uc.Validate(context.Background(), mustTrade("PETR4", 20, 19, 21.5))

	require.NoError(t, err)
	assert.True(t, res.Valid)
}

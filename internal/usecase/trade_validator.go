package usecase

import (
	"context"
	"errors"
	"fmt"

	"SwingBasket/internal/domain/models"
	domrepo "SwingBasket/internal/domain/repository"
	applogger "SwingBasket/pkg/logger"
	"SwingBasket/pkg/util"

	"github.com/shopspring/decimal"
)

// Rules are the desk thresholds a trade must meet.
type Rules struct {
	MinDailyLiquidity  float64
	MaxStopLossPercent float64
	MinRiskReward      float64
	MaxVolumeFraction  float64
}

// DefaultRules returns the desk's standing thresholds.
func DefaultRules() Rules {
	return Rules{
		MinDailyLiquidity:  30_000_000,
		MaxStopLossPercent: 0.08,
		MinRiskReward:      1.33,
		MaxVolumeFraction:  0.01,
	}
}

// SnapshotFetcher is the market data dependency of the validator.
type SnapshotFetcher interface {
	Fetch(ctx context.Context, ticker string) (models.MarketSnapshot, error)
}

// TradeValidatorUseCase checks a trade against the liquidity, stop, risk/reward
// and position-size rules.
type TradeValidatorUseCase struct {
	market  SnapshotFetcher
	rules   Rules
	metrics domrepo.Metrics
	log     *applogger.Logger
}

func NewTradeValidatorUseCase(market SnapshotFetcher, rules Rules, metrics domrepo.Metrics, log *applogger.Logger) *TradeValidatorUseCase {
	return &TradeValidatorUseCase{market: market, rules: rules, metrics: metrics, log: log}
}

// Validate fetches the snapshot for the trade's ticker and evaluates it.
// A ticker without market data yields a rejected result, not an error.
func (uc *TradeValidatorUseCase) Validate(ctx context.Context, trade models.TradeSignal) (models.ValidationResult, error) {
	snap, err := uc.market.Fetch(ctx, trade.Ticker)
	if err != nil {
		if !errors.Is(err, models.ErrTickerNotFound) {
			return models.ValidationResult{}, fmt.Errorf("validate %s: %w", trade.Ticker, err)
		}
		res := uc.Evaluate(trade, nil)
		uc.metrics.RecordValidation(trade.Ticker, res.Valid)
		return res, nil
	}

	res := uc.Evaluate(trade, &snap)
	uc.metrics.RecordValidation(trade.Ticker, res.Valid)
	uc.log.Info("trade validated",
		applogger.String("ticker", trade.Ticker),
		applogger.Bool("valid", res.Valid),
		applogger.Float64("stop_loss_percent", res.StopLossPercent),
		applogger.Float64("risk_reward_ratio", res.RiskRewardRatio),
	)
	return res, nil
}

// Evaluate applies the rules to trade. It is pure: a nil snapshot means the
// market data was unavailable and the trade is rejected with zeroed metrics.
func (uc *TradeValidatorUseCase) Evaluate(trade models.TradeSignal, snap *models.MarketSnapshot) models.ValidationResult {
	if snap == nil {
		return models.ValidationResult{
			Valid:    false,
			Messages: []string{fmt.Sprintf("❌ Could not fetch market data for %s", trade.Ticker)},
		}
	}

	r := uc.rules
	valid := true
	messages := make([]string, 1, 5)

	liquidity := snap.DailyLiquidity
	if liquidity < r.MinDailyLiquidity {
		valid = false
		messages = append(messages, fmt.Sprintf("❌ Insufficient daily liquidity: R$ %s (minimum required: R$ %s)",
			util.FormatMoney(liquidity), util.FormatMoney(r.MinDailyLiquidity)))
	} else {
		messages = append(messages, fmt.Sprintf("✅ Daily liquidity OK: R$ %s", util.FormatMoney(liquidity)))
	}

	// decimal: 1.33 over 1.00 must compare equal to the 1.33 minimum
	entry := decimal.NewFromFloat(trade.EntryPrice)
	risk := entry.Sub(decimal.NewFromFloat(trade.StopLoss)).Abs()
	reward := decimal.NewFromFloat(trade.Target).Sub(entry).Abs()

	stop := decimal.Zero
	if !entry.IsZero() {
		stop = risk.Div(entry.Abs())
	}
	stopPct := stop.InexactFloat64()
	if stop.GreaterThan(decimal.NewFromFloat(r.MaxStopLossPercent)) {
		valid = false
		messages = append(messages, fmt.Sprintf("❌ Stop loss too high: %s (maximum allowed: %s)",
			util.FormatPercent(stopPct, 2), util.FormatPercent(r.MaxStopLossPercent, 2)))
	} else {
		messages = append(messages, fmt.Sprintf("✅ Stop loss OK: %s", util.FormatPercent(stopPct, 2)))
	}

	ratio := decimal.Zero
	if risk.IsPositive() {
		ratio = reward.Div(risk)
	}
	rr := ratio.InexactFloat64()
	if ratio.LessThan(decimal.NewFromFloat(r.MinRiskReward)) {
		valid = false
		messages = append(messages, fmt.Sprintf("❌ Low Risk/Reward ratio: 1:%.2f (minimum required: 1:%.2f)", rr, r.MinRiskReward))
	} else {
		messages = append(messages, fmt.Sprintf("✅ Risk/Reward ratio OK: 1:%.2f", rr))
	}

	maxQty := decimal.NewFromFloat(snap.AverageDailyVolume).
		Mul(decimal.NewFromFloat(r.MaxVolumeFraction)).
		Floor().IntPart()
	messages = append(messages, fmt.Sprintf("ℹ️ Maximum quantity per operation: %s shares (%s of daily volume)",
		util.FormatCount(maxQty), util.FormatPercent(r.MaxVolumeFraction, 1)))

	if valid {
		messages[0] = fmt.Sprintf("✅ Trade APPROVED for %s", trade.Ticker)
	} else {
		messages[0] = fmt.Sprintf("❌ Trade REJECTED for %s", trade.Ticker)
	}

	return models.ValidationResult{
		Valid:           valid,
		DailyLiquidity:  liquidity,
		StopLossPercent: stopPct,
		RiskRewardRatio: rr,
		MaxQuantity:     maxQty,
		Messages:        messages,
	}
}

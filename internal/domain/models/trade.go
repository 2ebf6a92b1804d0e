package models

import (
	"fmt"
	"strings"
)

// TradeSignal is a long swing-trade call: buy at EntryPrice, exit at StopLoss or Target.
// Build it with NewTradeSignal so that StopLoss < EntryPrice < Target always holds.
type TradeSignal struct {
	Ticker     string  `json:"ticker"`
	EntryPrice float64 `json:"entry_price"`
	StopLoss   float64 `json:"stop_loss"`
	Target     float64 `json:"target"`
}

// NormalizeTicker trims and uppercases a ticker symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NewTradeSignal validates the price levels of a long trade and returns the signal.
func NewTradeSignal(ticker string, entry, stop, target float64) (TradeSignal, error) {
	t := NormalizeTicker(ticker)
	switch {
	case t == "":
		return TradeSignal{}, fmt.Errorf("%w: ticker cannot be empty", ErrInvalidTrade)
	case entry <= 0:
		return TradeSignal{}, fmt.Errorf("%w: entry price must be greater than 0", ErrInvalidTrade)
	case stop <= 0:
		return TradeSignal{}, fmt.Errorf("%w: stop loss must be greater than 0", ErrInvalidTrade)
	case target <= 0:
		return TradeSignal{}, fmt.Errorf("%w: target must be greater than 0", ErrInvalidTrade)
	case stop >= entry:
		return TradeSignal{}, fmt.Errorf("%w: stop loss must be below entry price for long positions", ErrInvalidTrade)
	case target <= entry:
		return TradeSignal{}, fmt.Errorf("%w: target must be above entry price", ErrInvalidTrade)
	}
	return TradeSignal{Ticker: t, EntryPrice: entry, StopLoss: stop, Target: target}, nil
}

package models

// Requests for the basket HTTP endpoints.

type TradeRequest struct {
	Ticker     string  `json:"ticker" form:"ticker" validate:"required"`
	EntryPrice float64 `json:"entry_price" form:"entry_price" validate:"gt=0"`
	StopLoss   float64 `json:"stop_loss" form:"stop_loss" validate:"gt=0,ltfield=EntryPrice"`
	Target     float64 `json:"target" form:"target" validate:"gt=0,gtfield=EntryPrice"`
}

// Signal converts the request into a validated TradeSignal.
func (r TradeRequest) Signal() (TradeSignal, error) {
	return NewTradeSignal(r.Ticker, r.EntryPrice, r.StopLoss, r.Target)
}

type TickerRequest struct {
	Ticker string `param:"ticker" validate:"required,max=20"`
}

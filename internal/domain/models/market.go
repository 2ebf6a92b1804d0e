package models

import "time"

// PriceBar is one daily OHLCV bar from the quote provider.
type PriceBar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceHistory is the raw provider answer for one symbol, oldest bar first.
type PriceHistory struct {
	Symbol      string
	CompanyName string
	Sector      string
	Bars        []PriceBar
}

// MarketSnapshot holds the derived liquidity figures for a ticker.
type MarketSnapshot struct {
	Ticker             string  `json:"ticker"`
	ProviderTicker     string  `json:"ticker_b3"`
	CurrentPrice       float64 `json:"current_price"`
	AverageDailyVolume float64 `json:"average_daily_volume"`
	DailyLiquidity     float64 `json:"daily_liquidity"`
	OpenPrice          float64 `json:"open_price"`
	HighPrice          float64 `json:"high_price"`
	LowPrice           float64 `json:"low_price"`
	ChangePercent      float64 `json:"change_percent"`
	CompanyName        string  `json:"company_name"`
	Sector             string  `json:"sector"`
}

// ValidationResult is the verdict of the four desk rules for one trade.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	DailyLiquidity  float64  `json:"daily_liquidity"`
	StopLossPercent float64  `json:"stop_loss_percent"`
	RiskRewardRatio float64  `json:"risk_reward_ratio"`
	MaxQuantity     int64    `json:"max_quantity"`
	Messages        []string `json:"messages"`
}

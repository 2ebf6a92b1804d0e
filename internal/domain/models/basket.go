package models

import "time"

// SummaryStats aggregates the invested amounts of a basket.
type SummaryStats struct {
	TotalOrders       int     `json:"total_orders"`
	TotalShares       int64   `json:"total_shares"`
	TotalInvested     float64 `json:"total_invested"`
	AverageInvestment float64 `json:"average_investment"`
	MinInvestment     float64 `json:"min_investment"`
	MaxInvestment     float64 `json:"max_investment"`
}

// BasketResult is the outcome of one basket generation.
type BasketResult struct {
	ID                  string           `json:"id"`
	TradeValid          bool             `json:"trade_valid"`
	TechnicalValidation ValidationResult `json:"technical_validation"`
	Orders              []ClientOrder    `json:"orders"`
	TotalClients        int              `json:"total_clients"`
	TotalOrders         int              `json:"total_orders"`
	TotalInvestedAmount float64          `json:"total_invested_amount"`
	Summary             SummaryStats     `json:"summary"`
	EligibilityMessages []string         `json:"eligibility_messages,omitempty"`
	SkippedRows         []string         `json:"skipped_rows,omitempty"`
	FileName            string           `json:"file_name,omitempty"`
	Timestamp           time.Time        `json:"timestamp"`
}

// BasketEvent is published after a basket file has been generated.
type BasketEvent struct {
	BasketID      string    `json:"basket_id"`
	Ticker        string    `json:"ticker"`
	EntryPrice    float64   `json:"entry_price"`
	Orders        int       `json:"orders"`
	TotalShares   int64     `json:"total_shares"`
	TotalInvested float64   `json:"total_invested"`
	FileName      string    `json:"file_name"`
	GeneratedAt   time.Time `json:"generated_at"`
}

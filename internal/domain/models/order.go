package models

import "encoding/json"

// Brokerage literals for the basket sheet.
const (
	ValidityToday    = "hoje"
	StrategyPosition = "position"
	DirectionBuy     = "compra"
	PriceTypeLimit   = "l"
)

// Optional is a brokerage cell that is either populated or blank.
// The zero value is blank.
type Optional struct {
	value string
	set   bool
}

// Some returns a populated Optional.
func Some(v string) Optional { return Optional{value: v, set: true} }

// Get returns the value and whether it was populated.
func (o Optional) Get() (string, bool) { return o.value, o.set }

// IsSet reports whether the cell is populated.
func (o Optional) IsSet() bool { return o.set }

// Cell renders the value for export: blank cells become "".
func (o Optional) Cell() string {
	if !o.set {
		return ""
	}
	return o.value
}

func (o Optional) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Cell())
}

func (o *Optional) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*o = Optional{}
		return nil
	}
	*o = Some(s)
	return nil
}

// ClientOrder is one row of the brokerage basket plus internal bookkeeping.
// ClientName and InvestedAmount are never exported to the basket file.
type ClientOrder struct {
	AccountNumber     string   `json:"account_number"`
	PushValidity      string   `json:"push_validity"`
	OrderValidity     string   `json:"order_validity"`
	Ticker            string   `json:"ticker"`
	Strategy          string   `json:"strategy"`
	Direction         string   `json:"direction"`
	Quantity          int64    `json:"quantity"`
	ApparentQuantity  Optional `json:"apparent_quantity"`
	MinimumQuantity   Optional `json:"minimum_quantity"`
	PriceType         string   `json:"price_type"`
	LimitPrice        float64  `json:"limit_price"`
	TriggerType       Optional `json:"trigger_type"`
	UpperTriggerPrice Optional `json:"upper_trigger_price"`
	UpperLimitPrice   Optional `json:"upper_limit_price"`
	LowerTriggerPrice Optional `json:"lower_trigger_price"`
	LowerLimitPrice   Optional `json:"lower_limit_price"`

	ClientName     string   `json:"client_name,omitempty"`
	InvestedAmount *float64 `json:"invested_amount,omitempty"`
}

// NewLimitBuyOrder builds a day limit buy order with the desk defaults.
func NewLimitBuyOrder(account, ticker string, quantity int64, limitPrice float64) ClientOrder {
	return ClientOrder{
		AccountNumber: account,
		PushValidity:  ValidityToday,
		OrderValidity: ValidityToday,
		Ticker:        ticker,
		Strategy:      StrategyPosition,
		Direction:     DirectionBuy,
		Quantity:      quantity,
		PriceType:     PriceTypeLimit,
		LimitPrice:    limitPrice,
	}
}

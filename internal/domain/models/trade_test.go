package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTradeSignal(t *testing.T) {
	s, err := NewTradeSignal("  petr4 ", 20, 19, 21.5)
	require.NoError(t, err)
	assert.Equal(t, TradeSignal{Ticker: "PETR4", EntryPrice: 20, StopLoss: 19, Target: 21.5}, s)
}

func TestNewTradeSignal_Invalid(t *testing.T) {
	cases := map[string][4]interface{}{
		"empty ticker":     {" ", 20.0, 19.0, 21.0},
		"zero entry":       {"PETR4", 0.0, 19.0, 21.0},
		"negative stop":    {"PETR4", 20.0, -1.0, 21.0},
		"zero target":      {"PETR4", 20.0, 19.0, 0.0},
		"stop at entry":    {"PETR4", 20.0, 20.0, 21.0},
		"stop above entry": {"PETR4", 20.0, 20.5, 21.0},
		"target at entry":  {"PETR4", 20.0, 19.0, 20.0},
		"target below":     {"PETR4", 20.0, 19.0, 19.5},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewTradeSignal(c[0].(string), c[1].(float64), c[2].(float64), c[3].(float64))
			assert.True(t, errors.Is(err, ErrInvalidTrade), "got %v", err)
		})
	}
}

func TestOptional(t *testing.T) {
	var blank Optional
	assert.False(t, blank.IsSet())
	assert.Equal(t, "", blank.Cell())

	v := Some("0")
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, "0", got)

	o := NewLimitBuyOrder("123", "PETR4", 100, 20)
	b, err := json.Marshal(o)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "", m["trigger_type"])
	assert.Equal(t, "hoje", m["order_validity"])
	assert.Equal(t, "l", m["price_type"])
	assert.NotContains(t, m, "invested_amount")

	var back ClientOrder
	require.NoError(t, json.Unmarshal(b, &back))
	assert.False(t, back.TriggerType.IsSet())
}

func TestRowError(t *testing.T) {
	inner := errors.New("invalid NET TOTAL")
	re := RowError{Row: 4, Err: inner}
	assert.Equal(t, "row 4: invalid NET TOTAL", re.Error())
	assert.ErrorIs(t, re, inner)
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"20000":        20000,
		"20000.50":     20000.5,
		"R$ 20.000,50": 20000.5,
		"20,000.50":    20000.5,
		"1.234.567":    1234567,
		"1234,5":       1234.5,
		"20,000":       20000,
		" 15000 ":      15000,
		"-100":         -100,
		"R$ 10.000,00": 10000,
		"R$ 20.000":    20000,
		"20.000":       20000,
		"R$ 1.250.000": 1250000,
		"-5.000":       -5000,
		"0.125":        0.125,
		"1234.567":     1234.567,
		"20.5":         20.5,
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "R$", "12a", "nan"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestParseAmountDefault(t *testing.T) {
	v, err := ParseAmountDefault("  ", 42)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	v, err = ParseAmountDefault("7", 42)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 8080, ParseIntDefault("", 8080))
	assert.Equal(t, 8080, ParseIntDefault("x", 8080))
	assert.Equal(t, 9000, ParseIntDefault("9000", 8080))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "30,000,000.00", FormatMoney(30_000_000))
	assert.Equal(t, "1,234.50", FormatMoney(1234.5))
	assert.Equal(t, "20,000", FormatCount(20000))
	assert.Equal(t, "5.00%", FormatPercent(0.05, 2))
	assert.Equal(t, "1.0%", FormatPercent(0.01, 1))
}

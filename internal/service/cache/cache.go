// Package cache holds the market snapshot caches used by the market data gateway.
// Entries live until Clear; there is no expiry.
package cache

import (
	"strings"
)

// Key returns the cache key for a provider symbol.
func Key(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

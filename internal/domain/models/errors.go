package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTrade marks malformed trade input rejected at the boundary.
	ErrInvalidTrade = errors.New("invalid trade")
	// ErrTickerNotFound is returned when the quote provider has no data for a ticker.
	ErrTickerNotFound = errors.New("market data not found")
	// ErrBasketFileNotFound is returned when no generated basket exists for a ticker.
	ErrBasketFileNotFound = errors.New("basket file not found")
	// ErrNoOrders is returned when writing a basket with zero orders.
	ErrNoOrders = errors.New("cannot generate basket file: no orders provided")
)

// RowError describes a client file row that was skipped.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

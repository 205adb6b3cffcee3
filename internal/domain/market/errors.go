package market

import "errors"

// Domain errors for stock trading

var (
	// ErrInvalidQuantity is returned when a trade quantity is below one
	ErrInvalidQuantity = errors.New("trade quantity must be at least 1")

	// ErrInvalidPrice is returned when a quote is not a positive finite number
	ErrInvalidPrice = errors.New("invalid price")
)

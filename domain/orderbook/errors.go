package orderbook

import "errors"

var (
	// ErrDuplicateID rejects a placement whose id is already resting.
	ErrDuplicateID = errors.New("orderbook: duplicate order id")
	// ErrNotFound is returned by modify and cancel for an id that is not resting.
	ErrNotFound = errors.New("orderbook: order not found")
	// ErrExhaustedCapacity means no free slot was left to rest an order.
	// Trades produced before the failure are still valid.
	ErrExhaustedCapacity = errors.New("orderbook: capacity exhausted")
)

package order

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order has no line items")
	ErrUnknownItem       = errors.New("line item references an unknown menu item")
	ErrInvalidQuantity   = errors.New("line item quantity must be at least 1")
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrStaleTransition means another transition won the race: the caller's
	// read of the current status is outdated. Safe to retry after re-reading.
	ErrStaleTransition = errors.New("order status changed concurrently")
)

package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("not allowed to act on this order")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrEmptyAddress      = errors.New("shipping address is required")
)

package product

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidPrice = errors.New("price must be greater than zero")
	ErrInvalidStock = errors.New("stock must not be negative")
	ErrNoFields     = errors.New("no fields to update")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrNotProductOwner = errors.New("product belongs to another seller")
	ErrHasOrderHistory = errors.New("product has order history and can only be disabled")
)

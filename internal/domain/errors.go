package domain

import "errors"

// Domain errors (no external dependencies). The HTTP layer maps these to
// status codes; usecases return them unwrapped so callers can errors.Is.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicate           = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrSameLocation        = errors.New("source and destination are the same location")
	ErrUnknownCategory     = errors.New("unknown stock category")
	ErrUnknownMode         = errors.New("unknown transfer mode")
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")
	ErrBlankIdentity       = errors.New("item has no identity-bearing field")
	ErrInsufficientStock   = errors.New("insufficient stock at source")
)

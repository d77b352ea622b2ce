package domain

import "errors"

var (
	// Normalization errors
	ErrValidation   = errors.New("invalid raw batch")
	ErrMissingField = errors.New("missing required field")

	// Aggregation / forecast errors
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInsufficientData = errors.New("not enough data points for regression")
	ErrAccountNotFound  = errors.New("account not found")
)

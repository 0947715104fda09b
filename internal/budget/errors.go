package budget

import "errors"

// Failure kinds returned by the remote API client. Callers decide with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")
	ErrRejected     = errors.New("request rejected")
)

var (
	ErrAmountRequired  = errors.New("amount is required")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrInvalidCategory = errors.New("unknown expense category")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrInvalidID       = errors.New("transaction id must be positive")
)

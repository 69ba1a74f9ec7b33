package domain

import "errors"

var (
	// ErrInvalidAmount marks a missing, non-positive or unsupported donation amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNetwork marks a transaction service that is unreachable or answered with a failure.
	ErrNetwork = errors.New("transaction service unavailable")
	// ErrInternal marks an unexpected server fault.
	ErrInternal = errors.New("internal error")
)

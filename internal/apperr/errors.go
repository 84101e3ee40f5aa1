package apperr

import "errors"

var (
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrMissingOrInvalidEvidence = errors.New("missing or invalid delivery evidence")
	ErrCapacityExhausted        = errors.New("no eligible partner with free capacity")
	ErrTokenExpiredOrConsumed   = errors.New("token expired or already consumed")
	ErrConcurrentModification   = errors.New("concurrent modification")

	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

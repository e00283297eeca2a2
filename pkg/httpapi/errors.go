package httpapi

import "errors"

var (
	// ErrInvalidTime is returned for an "at" value that is neither RFC 3339
	// nor MM/DD/YYYY.
	ErrInvalidTime = errors.New("invalid evaluation time")

	// ErrBatchTooLarge is returned when a batch holds more than MaxBatchSize requests.
	ErrBatchTooLarge = errors.New("batch too large")
)

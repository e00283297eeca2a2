package botfilter

import "errors"

// Package-level errors
var (
	// ErrInvalidArgument is returned by Classify when neither a user agent nor
	// an IP address is supplied, or when the evaluation instant is zero.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedInput wraps every failure to parse reference data at construction.
	ErrMalformedInput = errors.New("malformed reference data")

	// ErrOpeningSource is returned when a reference file cannot be opened.
	ErrOpeningSource = errors.New("failed to open reference file")
)

package config

import "errors"

// Package-specific errors
var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when a requested .env file cannot be loaded
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrMissingReferenceFile is returned when one of the three reference list paths is empty
	ErrMissingReferenceFile = errors.New("reference file path is not configured")

	// ErrInvalidTimezone is returned when the configured time zone is unknown
	ErrInvalidTimezone = errors.New("invalid time zone")

	// ErrReadingCustomLists is returned when a custom lists file cannot be read or decoded
	ErrReadingCustomLists = errors.New("failed to read custom lists file")
)

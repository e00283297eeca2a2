package iabfile

import "errors"

var (
	// ErrMalformedFlag is returned when a flag field is neither "1" nor "0".
	ErrMalformedFlag = errors.New("malformed flag field")

	// ErrReadFailed wraps I/O and quoting errors from the underlying reader.
	ErrReadFailed = errors.New("failed to read reference file")
)

package iprange

import "errors"

// ErrMalformedEntry is returned when a line is neither an IP address nor a
// valid address/prefix pair.
var ErrMalformedEntry = errors.New("malformed ip range entry")

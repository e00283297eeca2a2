package agentlist

import "errors"

var (
	// ErrMalformedRecord is returned when a list record violates its
	// structural contract. Construction fails as a whole.
	ErrMalformedRecord = errors.New("malformed user agent record")

	// ErrInvalidImpact is returned for an impact code other than 0, 1 or 2.
	ErrInvalidImpact = errors.New("invalid primary impact flag")
)

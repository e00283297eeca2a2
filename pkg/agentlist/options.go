package agentlist

import "time"

// Option configures list parsing.
type Option func(*options)

type options struct {
	location *time.Location
}

// WithLocation sets the time zone inactive dates are interpreted in.
// Defaults to UTC. Nil is ignored.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{location: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

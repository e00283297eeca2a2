package botfilter

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/botfilter/pkg/logger"
)

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for construction diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the source of "now" used by Classify. Nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the time zone that inactive dates in the reference files
// are interpreted in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *Classifier) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func newClassifier(opts []Option) *Classifier {
	c := &Classifier{
		log: logger.Discard(),
		now: time.Now,
		loc: time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

package botfilter

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrymomot/botfilter/pkg/config"
)

// Sources names the three reference files on disk.
type Sources struct {
	IPRanges string
	Exclude  string
	Include  string
}

// Open reads the reference files named by paths and builds a classifier.
func Open(paths Sources, opts ...Option) (*Classifier, error) {
	return OpenWithCustomLists(paths, CustomLists{}, opts...)
}

// OpenWithCustomLists is Open with operator include and exclude substrings.
func OpenWithCustomLists(paths Sources, lists CustomLists, opts ...Option) (*Classifier, error) {
	files := make([]*os.File, 0, 3)
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	for _, p := range []string{paths.IPRanges, paths.Exclude, paths.Include} {
		if p == "" {
			return nil, fmt.Errorf("%w: empty path", ErrOpeningSource)
		}
		f, err := os.Open(p)
		if err != nil {
			return nil, errors.Join(ErrOpeningSource, err)
		}
		files = append(files, f)
	}

	return NewWithCustomLists(files[0], files[1], files[2], lists, opts...)
}

// FromConfig builds a classifier from configuration: reference file paths,
// custom lists (env and YAML file) and the time zone for inactive dates.
// Options are applied after the ones derived from cfg.
func FromConfig(cfg config.Config, opts ...Option) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	lists, err := cfg.CustomLists()
	if err != nil {
		return nil, err
	}

	return OpenWithCustomLists(
		Sources{IPRanges: cfg.IPFile, Exclude: cfg.ExcludeFile, Include: cfg.IncludeFile},
		CustomLists{Include: lists.Include, Exclude: lists.Exclude},
		append([]Option{WithLocation(loc)}, opts...)...,
	)
}

package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds everything needed to build a classifier from disk.
type Config struct {
	// Reference lists as published by IAB/ABC International.
	IPFile      string `env:"BOTFILTER_IP_FILE"`
	ExcludeFile string `env:"BOTFILTER_EXCLUDE_FILE"`
	IncludeFile string `env:"BOTFILTER_INCLUDE_FILE"`

	// Operator overrides. Values from CustomListsFile are appended.
	CustomInclude   []string `env:"BOTFILTER_CUSTOM_INCLUDE" envSeparator:","`
	CustomExclude   []string `env:"BOTFILTER_CUSTOM_EXCLUDE" envSeparator:","`
	CustomListsFile string   `env:"BOTFILTER_CUSTOM_LISTS_FILE"`

	// Timezone is the IANA zone inactive dates are interpreted in.
	Timezone string `env:"BOTFILTER_TIMEZONE" envDefault:"UTC"`

	LogLevel  string `env:"BOTFILTER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"BOTFILTER_LOG_FORMAT" envDefault:"text"`
	Env       string `env:"BOTFILTER_ENV" envDefault:"development"`
}

// Validate checks that all reference files are set and the time zone resolves.
func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct{ name, path string }{
		{"ip", c.IPFile},
		{"exclude", c.ExcludeFile},
		{"include", c.IncludeFile},
	} {
		if f.path == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingReferenceFile, f.name))
		}
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves Timezone. An empty value is UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Join(ErrInvalidTimezone, err)
	}
	return loc, nil
}

// CustomLists merges the env lists with the lists file, if one is configured.
func (c Config) CustomLists() (CustomLists, error) {
	lists := CustomLists{
		Include: append([]string(nil), c.CustomInclude...),
		Exclude: append([]string(nil), c.CustomExclude...),
	}
	if c.CustomListsFile == "" {
		return lists, nil
	}
	fromFile, err := LoadCustomLists(c.CustomListsFile)
	if err != nil {
		return CustomLists{}, err
	}
	lists.Include = append(lists.Include, fromFile.Include...)
	lists.Exclude = append(lists.Exclude, fromFile.Exclude...)
	return lists, nil
}

package config

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// CustomLists are operator-maintained user agent substrings.
//
// File format:
//
//	include:
//	  - TrustedMonitor
//	exclude:
//	  - InternalCrawler
type CustomLists struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// ParseCustomLists decodes a YAML custom lists document. An empty document
// yields empty lists.
func ParseCustomLists(r io.Reader) (CustomLists, error) {
	var lists CustomLists
	if err := yaml.NewDecoder(r).Decode(&lists); err != nil && !errors.Is(err, io.EOF) {
		return CustomLists{}, errors.Join(ErrReadingCustomLists, err)
	}
	return lists, nil
}

// LoadCustomLists reads a YAML custom lists file.
func LoadCustomLists(path string) (CustomLists, error) {
	f, err := os.Open(path)
	if err != nil {
		return CustomLists{}, errors.Join(ErrReadingCustomLists, err)
	}
	defer f.Close()
	return ParseCustomLists(f)
}

// Command botfilter classifies requests against the IAB/ABC spiders and
// robots reference lists.
//
//	botfilter check --ua "Mozilla/5.0 ..." --ip 203.0.113.9
//	botfilter batch < requests.tsv
//	botfilter serve --addr :8080
//
// Reference files are taken from BOTFILTER_* environment variables (or a
// .env file) and can be overridden with flags.
package main

import (
	"errors"
	"fmt"
	"os"
	_ "time/tzdata"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUsage     = 1
	exitLoadError = 2
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// loadError marks failures to build the classifier.
type loadError struct{ err error }

func (e loadError) Error() string { return e.err.Error() }
func (e loadError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var le loadError
	if errors.As(err, &le) {
		return exitLoadError
	}
	return exitUsage
}

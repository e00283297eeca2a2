package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/botfilter"
	"github.com/dmitrymomot/botfilter/pkg/httpapi"
)

var errNoSignals = errors.New("at least one of --ua or --ip is required")

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var (
		ua     string
		ip     string
		at     string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Classify a single request",
		Example: `  botfilter check --ua "Mozilla/5.0 (compatible; Googlebot/2.1)"
  botfilter check --ip 203.0.113.9 --at 01/31/2024 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ua == "" && ip == "" {
				return errNoSignals
			}
			c, _, err := flags.loadClassifier(cmd)
			if err != nil {
				return err
			}
			when, err := httpapi.ParseTime(at, c.Location())
			if err != nil {
				return err
			}

			addr, err := parseOptionalAddr(ip)
			if err != nil {
				return err
			}
			if when.IsZero() {
				when = time.Now()
			}
			v, err := c.ClassifyAt(ua, addr, when)
			if err != nil {
				return err
			}
			return writeVerdict(cmd.OutOrStdout(), v, asJSON)
		},
	}

	cmd.Flags().StringVar(&ua, "ua", "", "user agent")
	cmd.Flags().StringVar(&ip, "ip", "", "client IP address")
	cmd.Flags().StringVar(&at, "at", "", "evaluation time, MM/DD/YYYY or RFC 3339 (default now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the verdict as JSON")
	return cmd
}

func writeVerdict(w io.Writer, v botfilter.Verdict, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(v)
	}
	_, err := fmt.Fprintf(w, "spider_or_robot: %t\ncategory: %s\nreason: %s\nimpact: %s\n",
		v.SpiderOrRobot, v.Category, v.Reason, v.Impact)
	return err
}

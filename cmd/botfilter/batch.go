package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/botfilter"
	"github.com/dmitrymomot/botfilter/pkg/httpapi"
	"github.com/dmitrymomot/botfilter/pkg/logger"
)

const maxBatchLine = 1 << 20

// batchResult is one JSON line of batch output.
type batchResult struct {
	Line      int                `json:"line"`
	IP        string             `json:"ip,omitempty"`
	UserAgent string             `json:"user_agent,omitempty"`
	Verdict   *botfilter.Verdict `json:"verdict,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func newBatchCmd(flags *globalFlags) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify tab-separated ip and user agent lines from stdin",
		Long: `Reads lines of the form "<ip>\t<user agent>" from stdin and writes one JSON
object per line to stdout. Either column may be empty; empty lines are
skipped. Lines that cannot be classified carry an "error" field and do not
stop the batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, log, err := flags.loadClassifier(cmd)
			if err != nil {
				return err
			}
			when, err := httpapi.ParseTime(at, c.Location())
			if err != nil {
				return err
			}
			if when.IsZero() {
				when = time.Now()
			}

			start := time.Now()
			enc := json.NewEncoder(cmd.OutOrStdout())
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), maxBatchLine)

			var n, failed int
			for scanner.Scan() {
				n++
				text := strings.TrimRight(scanner.Text(), "\r")
				if text == "" {
					continue
				}
				res := classifyLine(c, n, text, when)
				if res.Error != "" {
					failed++
				}
				if err := enc.Encode(res); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			log.Debug("batch finished",
				logger.Count("lines", n),
				logger.Count("failed", failed),
				logger.Duration(time.Since(start)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "evaluation time, MM/DD/YYYY or RFC 3339 (default now)")
	return cmd
}

func classifyLine(c *botfilter.Classifier, n int, text string, at time.Time) batchResult {
	ip, ua, _ := strings.Cut(text, "\t")
	ip = strings.TrimSpace(ip)
	res := batchResult{Line: n, IP: ip, UserAgent: ua}

	addr, err := parseOptionalAddr(ip)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	v, err := c.ClassifyAt(ua, addr, at)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Verdict = &v
	return res
}

func parseOptionalAddr(s string) (netip.Addr, error) {
	if s == "" {
		return netip.Addr{}, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid ip address %q", s)
	}
	return addr, nil
}

package main

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"calfmt/internal/format"
	"calfmt/internal/iso"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] PATTERN INSTANT...",
	Short: "Format RFC 3339 instants with a pattern",
	Long:  `Format prints each instant (RFC 3339, or "now") with the pattern, one line per instant in argument order`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFormat,
}

func init() {
	formatCmd.Flags().Int("jobs", runtime.NumCPU(), "number of instants formatted in parallel")
	formatCmd.Flags().String("zone", "", "zone id to convert instants to (default: catalog zone, then the instant's own offset)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	zone, err := cmd.Flags().GetString("zone")
	if err != nil {
		return fmt.Errorf("failed to get zone flag: %w", err)
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	f, err := s.compile(args[0])
	if err != nil {
		return err
	}
	if zone == "" {
		zone = s.defaults().Zone
	}
	var loc *time.Location
	if zone != "" {
		if loc, err = iso.NewZones().Load(zone); err != nil {
			return err
		}
	}

	var lines []string
	err = s.timer.Track("format", func() error {
		lines, err = formatInstants(cmd.Context(), f, args[1:], loc, jobs, time.Now)
		return err
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

// formatInstants formats each input concurrently and returns the results
// in input order. The first failure cancels the rest.
func formatInstants(ctx context.Context, f *format.Formatter, inputs []string, loc *time.Location, jobs int, now func() time.Time) ([]string, error) {
	out := make([]string, len(inputs))
	if len(inputs) == 0 {
		return out, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(inputs))))
	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			at, err := parseInstant(input, now)
			if err != nil {
				return err
			}
			if loc != nil {
				at = at.In(loc)
			}
			text, err := f.Format(iso.At(at))
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			out[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseInstant(input string, now func() time.Time) (time.Time, error) {
	if strings.EqualFold(input, "now") {
		return now(), nil
	}
	at, err := time.Parse(time.RFC3339Nano, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: expected RFC 3339", input)
	}
	return at, nil
}

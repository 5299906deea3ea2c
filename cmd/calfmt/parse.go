package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"calfmt/internal/format"
	"calfmt/internal/iso"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] PATTERN TEXT...",
	Short: "Parse texts with a pattern",
	Long:  `Parse parses each text with the pattern and prints the parsed fields, optionally resolved to an instant`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	parseCmd.Flags().Bool("resolve", false, "resolve the parsed fields to an RFC 3339 instant")
	parseCmd.Flags().Bool("lenient", false, "start parsing in lenient mode")
	parseCmd.Flags().Bool("insensitive", false, "start parsing case-insensitively")
	parseCmd.Flags().String("zone", "", "zone id used to resolve texts without offset or zone")
}

// parseResult is the outcome for one text.
type parseResult struct {
	Text     string           `json:"text" msgpack:"text"`
	Fields   map[string]int64 `json:"fields,omitempty" msgpack:"fields,omitempty"`
	Offset   *int             `json:"offset,omitempty" msgpack:"offset,omitempty"`
	Zone     string           `json:"zone,omitempty" msgpack:"zone,omitempty"`
	Resolved string           `json:"resolved,omitempty" msgpack:"resolved,omitempty"`
	Code     string           `json:"code,omitempty" msgpack:"code,omitempty"`
	Error    string           `json:"error,omitempty" msgpack:"error,omitempty"`

	parsed *format.Parsed
	err    error
}

type parseOptions struct {
	resolve bool
	loc     *time.Location
}

func runParse(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	formatFlag, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outFormat, err := readFormat(formatFlag, "pretty", "json", "msgpack")
	if err != nil {
		return err
	}
	resolve, err := flags.GetBool("resolve")
	if err != nil {
		return fmt.Errorf("failed to get resolve flag: %w", err)
	}
	lenient, err := flags.GetBool("lenient")
	if err != nil {
		return fmt.Errorf("failed to get lenient flag: %w", err)
	}
	insensitive, err := flags.GetBool("insensitive")
	if err != nil {
		return fmt.Errorf("failed to get insensitive flag: %w", err)
	}
	zone, err := flags.GetString("zone")
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
	if lenient || insensitive {
		d := s.defaults()
		caseSensitive := !insensitive && (d.CaseSensitive == nil || *d.CaseSensitive)
		strict := !lenient && (d.Strict == nil || *d.Strict)
		f = f.WithParseDefaults(caseSensitive, strict)
	}

	opts := parseOptions{resolve: resolve, loc: time.UTC}
	if zone == "" {
		zone = s.defaults().Zone
	}
	if zone != "" {
		if opts.loc, err = iso.NewZones().Load(zone); err != nil {
			return err
		}
	}

	var results []parseResult
	_ = s.timer.Track("parse", func() error {
		results = parseTexts(f, args[1:], opts)
		return nil
	})

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}

	out := cmd.OutOrStdout()
	if outFormat == "pretty" {
		for _, r := range results {
			if r.err != nil {
				s.report(r.err, r.Text, "text")
				continue
			}
			writeParsePretty(out, r)
		}
	} else if err := writeStructured(out, outFormat, results); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d texts failed", failed, len(results))
	}
	return nil
}

func parseTexts(f *format.Formatter, texts []string, opts parseOptions) []parseResult {
	results := make([]parseResult, len(texts))
	for i, text := range texts {
		r := parseResult{Text: text}
		p, err := f.Parse(text)
		if err != nil {
			r.fail(err)
			results[i] = r
			continue
		}
		r.parsed = p
		r.Fields = p.Values()
		if off, ok := p.OffsetSeconds(); ok {
			r.Offset = &off
		}
		r.Zone, _ = p.ZoneID()
		if opts.resolve {
			at, err := iso.Resolve(p, opts.loc)
			if err != nil {
				r.fail(fmt.Errorf("resolve: %w", err))
			} else {
				r.Resolved = at.Format(time.RFC3339Nano)
			}
		}
		results[i] = r
	}
	return results
}

func (r *parseResult) fail(err error) {
	r.err = err
	r.Error = err.Error()
	var pe *format.ParseError
	if errors.As(err, &pe) {
		r.Code = pe.Code.ID()
	}
}

func writeParsePretty(w io.Writer, r parseResult) {
	fmt.Fprintf(w, "%s\n  %s\n", r.Text, r.parsed.String())
	if r.Resolved != "" {
		fmt.Fprintf(w, "  => %s\n", r.Resolved)
	}
}

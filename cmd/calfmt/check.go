package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calfmt/internal/catalog"
	"calfmt/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [FILE]",
	Short: "Verify a pattern catalog",
	Long: `Check compiles every pattern of a catalog (calfmt.toml or YAML) and verifies
its canonical rendering, its samples and its format cases`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	checkCmd.Flags().Int("jobs", runtime.NumCPU(), "number of entries checked in parallel")
	checkCmd.Flags().String("ui", "auto", "show progress UI (auto|on|off)")
}

type checkOutcome struct {
	report catalog.Report
	err    error
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outFormat, err := readFormat(formatFlag, "pretty", "json", "msgpack")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	cat := s.catalog
	if len(args) == 1 {
		if cat, err = catalog.Load(args[0]); err != nil {
			return err
		}
	}
	if cat == nil {
		return fmt.Errorf("no catalog: pass a file or create calfmt.toml")
	}

	opts := catalog.CheckOptions{Jobs: jobs, Tracer: s.tracer}
	var report catalog.Report
	err = s.timer.Track("check", func() error {
		if outFormat == "pretty" && !s.quiet && shouldUseTUI(mode) {
			report, err = runCheckWithUI(cmd.Context(), cat, opts)
		} else {
			report, err = catalog.Check(cmd.Context(), cat, opts)
		}
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outFormat == "pretty" {
		writeCheckPretty(out, report, s.quiet)
	} else if err := writeStructured(out, outFormat, report); err != nil {
		return err
	}
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d of %d patterns failed", n, len(report.Results))
	}
	return nil
}

func runCheckWithUI(ctx context.Context, cat *catalog.Catalog, opts catalog.CheckOptions) (catalog.Report, error) {
	events := make(chan catalog.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Events = events
		report, err := catalog.Check(ctx, cat, opts)
		outcomeCh <- checkOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+cat.Path, cat.Names(), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

func writeCheckPretty(w io.Writer, report catalog.Report, quiet bool) {
	for _, res := range report.Results {
		if res.OK() {
			if !quiet {
				fmt.Fprintf(w, "%s %s\n", passColor.Sprint("ok  "), res.Name)
			}
			continue
		}
		fmt.Fprintf(w, "%s %s  %s\n", failColor.Sprint("FAIL"), res.Name, res.Pattern)
		for _, f := range res.Failures {
			input := ""
			if f.Input != "" {
				input = fmt.Sprintf(" %q", f.Input)
			}
			code := ""
			if f.Code != "" {
				code = " " + f.Code
			}
			fmt.Fprintf(w, "     %s%s%s: %s\n", f.Kind, input, code, f.Message)
		}
	}
	fmt.Fprintf(w, "%d patterns, %d failed\n", len(report.Results), report.Failed())
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calfmt/internal/catalog"
	"calfmt/internal/diagfmt"
	"calfmt/internal/format"
	"calfmt/internal/observ"
	"calfmt/internal/prof"
	"calfmt/internal/trace"
)

// session carries what every command needs: output settings, the tracer,
// the phase timer and the pattern catalog when one is present.
type session struct {
	cmd     *cobra.Command
	tracer  trace.Tracer
	span    *trace.Span
	timer   *observ.Timer
	color   bool
	quiet   bool
	timings bool
	locale  string
	catalog *catalog.Catalog
	prof    *prof.Session
	cleanup func()
}

func openSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	locale, err := flags.GetString("locale")
	if err != nil {
		return nil, fmt.Errorf("failed to get locale flag: %w", err)
	}

	var profOpts prof.Options
	if profOpts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if profOpts.Mem, err = flags.GetString("memprofile"); err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if profOpts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	useColor, err := resolveColor(colorFlag, os.Stderr)
	if err != nil {
		return nil, err
	}
	color.NoColor = !useColor

	s := &session{
		cmd:     cmd,
		timer:   observ.NewTimer(),
		color:   useColor,
		quiet:   quiet,
		timings: timings,
	}

	if err := s.timer.Track("config", func() error {
		s.catalog, err = loadCatalog(configPath)
		return err
	}); err != nil {
		return nil, err
	}
	s.locale = locale
	if s.locale == "" && s.catalog != nil {
		s.locale = s.catalog.Defaults.Locale
	}
	if s.locale == "" {
		s.locale = "en"
	}

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, err
	}
	s.tracer = tracer
	s.cleanup = cleanup
	if profOpts.Enabled() {
		if s.prof, err = prof.Start(profOpts); err != nil {
			cleanup()
			return nil, err
		}
	}
	s.span = trace.Begin(tracer, trace.ScopeCommand, cmd.Name(), 0)
	cmd.SetContext(trace.WithSpanContext(cmd.Context(), trace.SpanContext{SpanID: s.span.ID()}))
	return s, nil
}

// close ends the command span, prints timings and flushes tracing.
func (s *session) close() {
	s.span.End("")
	if err := s.prof.Stop(); err != nil {
		fmt.Fprintf(s.cmd.ErrOrStderr(), "profile: %v\n", err)
	}
	if s.timings {
		fmt.Fprint(s.cmd.ErrOrStderr(), s.timer.Summary())
	}
	if s.cleanup != nil {
		s.cleanup()
	}
}

func resolveColor(flag string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", "auto":
		return isTerminal(f), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", flag)
	}
}

// loadCatalog loads path, or the catalog found from the working directory
// up when path is empty. No catalog is not an error.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		found, ok, err := catalog.Find(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		path = found
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// defaults returns the catalog defaults with the session locale applied.
func (s *session) defaults() catalog.Defaults {
	var d catalog.Defaults
	if s.catalog != nil {
		d = s.catalog.Defaults
	}
	d.Locale = s.locale
	return d
}

// compile resolves an @name reference and compiles the pattern. Compile
// errors are rendered against the pattern on stderr.
func (s *session) compile(ref string) (*format.Formatter, error) {
	src, err := s.catalog.Resolve(ref)
	if err != nil {
		return nil, err
	}
	var f *format.Formatter
	err = s.timer.Track("compile", func() error {
		f, err = s.defaults().Compile(src, s.tracer)
		return err
	})
	if err != nil {
		s.report(err, src, "pattern")
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return f, nil
}

// report renders err with a caret under text when it carries a diagnostic,
// and as a plain line otherwise.
func (s *session) report(err error, text, label string) {
	w := s.cmd.ErrOrStderr()
	if diagfmt.PrettyError(w, err, text, diagfmt.PrettyOpts{Color: s.color, Label: label}) {
		return
	}
	fmt.Fprintf(w, "%s: %v\n", label, err)
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"calfmt/internal/format"
	"calfmt/internal/iso"
	"calfmt/internal/trace"
)

// Status is the progress state of one entry.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// Event reports a status change of one entry during Check.
type Event struct {
	Name   string
	Status Status
}

// CheckOptions configure Check.
type CheckOptions struct {
	Jobs   int
	Tracer trace.Tracer
	// Events, when set, receives progress events. Check does not close it.
	Events chan<- Event
}

// Failure is one failed expectation.
type Failure struct {
	Kind    string `json:"kind" msgpack:"kind"`
	Input   string `json:"input,omitempty" msgpack:"input,omitempty"`
	Code    string `json:"code,omitempty" msgpack:"code,omitempty"`
	Message string `json:"message" msgpack:"message"`
}

// Result is the outcome for one entry.
type Result struct {
	Name      string    `json:"name" msgpack:"name"`
	Pattern   string    `json:"pattern" msgpack:"pattern"`
	Canonical string    `json:"canonical,omitempty" msgpack:"canonical,omitempty"`
	Failures  []Failure `json:"failures,omitempty" msgpack:"failures,omitempty"`
}

// OK reports whether the entry passed.
func (r Result) OK() bool { return len(r.Failures) == 0 }

// Report is the outcome of Check, in entry order.
type Report struct {
	Path    string   `json:"path" msgpack:"path"`
	Results []Result `json:"results" msgpack:"results"`
}

// Failed counts failed entries.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Check verifies every entry of c. Entries run concurrently, limited to
// opts.Jobs; results keep catalog order.
func Check(ctx context.Context, c *Catalog, opts CheckOptions) (Report, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	entries := c.Entries()
	report := Report{Path: c.Path, Results: make([]Result, len(entries))}
	if len(entries) == 0 {
		return report, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = 1
	}
	jobs = min(jobs, len(entries))

	parent := trace.CurrentSpan(ctx).SpanID
	span := trace.Begin(tracer, trace.ScopeCommand, "check", parent).WithExtra("path", c.Path)
	defer func() { span.End(fmt.Sprintf("%d entries", len(entries))) }()

	emit := func(name string, st Status) {
		if opts.Events == nil {
			return
		}
		select {
		case opts.Events <- Event{Name: name, Status: st}:
		case <-ctx.Done():
		}
	}
	for _, e := range entries {
		emit(e.Name, StatusQueued)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(e.Name, StatusRunning)
			res := checkEntry(c.Defaults, e, tracer)
			report.Results[i] = res
			if res.OK() {
				emit(e.Name, StatusPassed)
			} else {
				emit(e.Name, StatusFailed)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func checkEntry(d Defaults, e Entry, tracer trace.Tracer) Result {
	res := Result{Name: e.Name, Pattern: e.Pattern}
	fail := func(kind, input string, err error) {
		res.Failures = append(res.Failures, Failure{Kind: kind, Input: input, Code: codeOf(err), Message: err.Error()})
	}

	f, err := d.Compile(e.Pattern, tracer)
	if err != nil {
		fail("compile", e.Pattern, err)
		return res
	}
	res.Canonical = f.String()
	if e.Canonical != "" && e.Canonical != res.Canonical {
		res.Failures = append(res.Failures, Failure{
			Kind:    "canonical",
			Input:   e.Pattern,
			Message: "canonical form differs: " + Diff(e.Canonical, res.Canonical),
		})
	}

	for _, sample := range e.Samples {
		if _, err := f.Parse(sample); err != nil {
			fail("parse", sample, err)
		}
	}

	loc := d.Location()
	for _, fc := range e.Formats {
		at, err := time.Parse(time.RFC3339Nano, fc.At)
		if err != nil {
			fail("format", fc.At, fmt.Errorf("bad instant: %w", err))
			continue
		}
		got, err := f.Format(iso.At(at.In(loc)))
		if err != nil {
			fail("format", fc.At, err)
			continue
		}
		if got != fc.Want {
			res.Failures = append(res.Failures, Failure{
				Kind:    "format",
				Input:   fc.At,
				Message: fmt.Sprintf("got %q, want %q", got, fc.Want),
			})
		}
	}
	return res
}

// Diff renders the character difference between want and got as
// [-removed-]{+added+}.
func Diff(want, got string) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(want, got, false))
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

func codeOf(err error) string {
	var ce *format.ConstructionError
	if errors.As(err, &ce) {
		return ce.Diagnostic().Code.ID()
	}
	var pe *format.ParseError
	if errors.As(err, &pe) {
		return pe.Diagnostic().Code.ID()
	}
	var pre *format.PrintError
	if errors.As(err, &pre) {
		return pre.Diagnostic().Code.ID()
	}
	return ""
}

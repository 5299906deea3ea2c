package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"calfmt/internal/catalog"
	"calfmt/internal/diag"
)

func load(t *testing.T, name string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}
	return c
}

func TestLoadTOML(t *testing.T) {
	c := load(t, "calfmt.toml")
	if diff := cmp.Diff([]string{"iso-date", "month-name", "stamp"}, c.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if c.Defaults.Locale != "en" || c.Defaults.Zone != "UTC" {
		t.Fatalf("defaults = %+v", c.Defaults)
	}
	e, ok := c.Lookup("iso-date")
	if !ok {
		t.Fatal("iso-date missing")
	}
	want := []catalog.FormatCase{{At: "2008-07-05T13:04:09Z", Want: "2008-07-05"}}
	if diff := cmp.Diff(want, e.Formats); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Lookup("nope"); ok {
		t.Fatal("unexpected entry")
	}
}

func TestLoadYAML(t *testing.T) {
	c := load(t, "calfmt.yaml")
	if diff := cmp.Diff([]string{"broken", "jour"}, c.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if c.Defaults.CaseSensitive == nil || *c.Defaults.CaseSensitive {
		t.Fatalf("case_sensitive = %v", c.Defaults.CaseSensitive)
	}
	if c.Defaults.Strict != nil {
		t.Fatalf("strict should be unset")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name, kind, data, want string
	}{
		{"unknown toml key", "toml", "[patterns.a]\npattern = \"yyyy\"\nextra = 1\n", "unknown key"},
		{"unknown yaml key", "yaml", "patterns:\n  a:\n    pattern: yyyy\n    extra: 1\n", "YAML"},
		{"missing pattern", "toml", "[patterns.a]\nsamples = [\"x\"]\n", "missing pattern"},
		{"bad zone", "toml", "[defaults]\nzone = \"Mars/Olympus\"\n", "defaults.zone"},
		{"bad syntax", "json", "{}", "unknown catalog syntax"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Decode([]byte(tt.data), tt.kind)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "calfmt.yml"), []byte("patterns: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	path, ok, err := catalog.Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", path, ok, err)
	}
	if filepath.Base(path) != "calfmt.yml" {
		t.Fatalf("path = %q", path)
	}
	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Names()) != 0 {
		t.Fatalf("names = %v", c.Names())
	}
}

func TestResolve(t *testing.T) {
	c := load(t, "calfmt.toml")
	tests := []struct {
		ref, want string
		fails     bool
	}{
		{"@iso-date", "yyyy-MM-dd", false},
		{"HH:mm", "HH:mm", false},
		{"@missing", "", true},
	}
	for _, tt := range tests {
		got, err := c.Resolve(tt.ref)
		if (err != nil) != tt.fails || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v", tt.ref, got, err)
		}
	}
	var none *catalog.Catalog
	if _, err := none.Resolve("@iso-date"); err == nil {
		t.Fatal("nil catalog resolved a reference")
	}
	if got, err := none.Resolve("yyyy"); err != nil || got != "yyyy" {
		t.Fatalf("nil catalog plain = %q, %v", got, err)
	}
}

func TestCheckPasses(t *testing.T) {
	c := load(t, "calfmt.toml")
	report, err := catalog.Check(context.Background(), c, catalog.CheckOptions{Jobs: 4})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.Failed() != 0 {
		t.Fatalf("failures: %+v", report.Results)
	}
	if report.Results[0].Name != "iso-date" || report.Results[2].Name != "stamp" {
		t.Fatalf("order = %+v", report.Results)
	}
}

func TestCheckFailures(t *testing.T) {
	c := load(t, "calfmt.yaml")
	events := make(chan catalog.Event, 16)
	report, err := catalog.Check(context.Background(), c, catalog.CheckOptions{Jobs: 2, Events: events})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	close(events)
	if report.Failed() != 1 {
		t.Fatalf("Failed = %d", report.Failed())
	}
	broken := report.Results[0]
	var kinds []string
	for _, f := range broken.Failures {
		kinds = append(kinds, f.Kind)
	}
	if diff := cmp.Diff([]string{"canonical", "parse", "format"}, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if broken.Failures[1].Code != diag.PrsMismatch.ID() {
		t.Fatalf("parse code = %q", broken.Failures[1].Code)
	}
	if !report.Results[1].OK() {
		t.Fatalf("jour failed: %+v", report.Results[1].Failures)
	}

	final := map[string]catalog.Status{}
	for ev := range events {
		final[ev.Name] = ev.Status
	}
	want := map[string]catalog.Status{"broken": catalog.StatusFailed, "jour": catalog.StatusPassed}
	if diff := cmp.Diff(want, final); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckCompileFailure(t *testing.T) {
	c, err := catalog.Decode([]byte("[patterns.bad]\npattern = \"yyyy]\"\n[patterns.fine]\npattern = \"yyyy[\"\n"), "toml")
	if err != nil {
		t.Fatal(err)
	}
	report, err := catalog.Check(context.Background(), c, catalog.CheckOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Failed() != 1 {
		t.Fatalf("Failed = %d: %+v", report.Failed(), report.Results)
	}
	f := report.Results[0].Failures[0]
	if f.Kind != "compile" || f.Code != diag.SynUnmatchedBracket.ID() {
		t.Fatalf("failure = %+v", f)
	}
}

func TestCheckCancelled(t *testing.T) {
	c := load(t, "calfmt.toml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := catalog.Check(ctx, c, catalog.CheckOptions{Jobs: 1}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestDiff(t *testing.T) {
	if got := catalog.Diff("abc", "abd"); got != "ab[-c-]{+d+}" {
		t.Fatalf("Diff = %q", got)
	}
	if got := catalog.Diff("same", "same"); got != "same" {
		t.Fatalf("Diff = %q", got)
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vmihailenco/msgpack/v5"

	"calfmt/internal/pattern"
)

const testCatalog = "testdata/calfmt.toml"

// execute runs the CLI with fresh flag values and captured output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestExplain(t *testing.T) {
	out, _, err := execute(t, "--config", testCatalog, "explain", "@iso")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	first, _, _ := strings.Cut(out, "\n")
	if first != "Value(ISO.Year,4,19,EXCEEDS_PAD)'-'Value(ISO.MonthOfYear,2)'-'Value(ISO.DayOfMonth,2)" {
		t.Fatalf("first line = %q", first)
	}
	if !strings.Contains(out, "  yyyy ") || !strings.Contains(out, "  dd ") {
		t.Fatalf("letter meanings missing:\n%s", out)
	}
}

func TestExplainInvalidPattern(t *testing.T) {
	_, stderr, err := execute(t, "--config", testCatalog, "explain", "yyyy-MMMMMM")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(stderr, "pattern:6: ERROR SYN2002") || !strings.Contains(stderr, "^~~~~~") {
		t.Fatalf("stderr:\n%s", stderr)
	}
}

func TestTokenizeJSON(t *testing.T) {
	out, _, err := execute(t, "--config", testCatalog, "tokenize", "--format", "json", "yyyy'T'")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var tokens []struct {
		Kind  string `json:"kind"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &tokens); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(tokens) != 3 || tokens[0].Count != 4 {
		t.Fatalf("tokens = %+v", tokens)
	}
}

func TestFormat(t *testing.T) {
	out, _, err := execute(t, "--config", testCatalog, "format", "--zone", "UTC", "--jobs", "2",
		"yyyy-MM-dd HH:mm", "2008-07-05T13:04:09Z", "2009-06-30T23:59:00+02:00")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if want := "2008-07-05 13:04\n2009-06-30 21:59\n"; out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestFormatBadInstant(t *testing.T) {
	_, _, err := execute(t, "--config", testCatalog, "format", "yyyy", "yesterday")
	if err == nil || !strings.Contains(err.Error(), "RFC 3339") {
		t.Fatalf("err = %v", err)
	}
}

func TestFormatInstantsOrder(t *testing.T) {
	f := pattern.MustCompile("HH:mm")
	now := func() time.Time { return time.Date(2020, 1, 1, 9, 30, 0, 0, time.UTC) }
	inputs := []string{"2008-07-05T13:04:09Z", "now", "2008-07-05T00:01:00Z", "NOW"}
	got, err := formatInstants(context.Background(), f, inputs, nil, 3, now)
	if err != nil {
		t.Fatalf("formatInstants: %v", err)
	}
	if diff := cmp.Diff([]string{"13:04", "09:30", "00:01", "09:30"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON(t *testing.T) {
	out, _, err := execute(t, "--config", testCatalog, "parse", "--format", "json", "--resolve", "@iso", "2008-07-05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var results []parseResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want := map[string]int64{"ISO.Year": 2008, "ISO.MonthOfYear": 7, "ISO.DayOfMonth": 5}
	if diff := cmp.Diff(want, results[0].Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if results[0].Resolved != "2008-07-05T00:00:00Z" {
		t.Fatalf("resolved = %q", results[0].Resolved)
	}
}

func TestParseMsgpack(t *testing.T) {
	out, _, err := execute(t, "--config", testCatalog, "parse", "--format", "msgpack", "--insensitive", "hh:mm a", "01:04 pm")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var results []parseResult
	if err := msgpack.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := results[0].Fields["ISO.AmPmOfDay"]; got != 1 {
		t.Fatalf("AmPmOfDay = %d", got)
	}
}

func TestParseFailure(t *testing.T) {
	out, stderr, err := execute(t, "--config", testCatalog, "parse", "HH:mm", "13:04", "13-04")
	if err == nil || err.Error() != "1 of 2 texts failed" {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out, "13:04\n") {
		t.Fatalf("stdout:\n%s", out)
	}
	if !strings.Contains(stderr, "text:3: ERROR PRS5001") {
		t.Fatalf("stderr:\n%s", stderr)
	}
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "--config", testCatalog, "check", "--ui", "off")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 patterns, 0 failed") {
		t.Fatalf("out:\n%s", out)
	}
}

func TestCheckFailureJSON(t *testing.T) {
	out, _, err := execute(t, "--config", testCatalog, "check", "--format", "json", "testdata/broken.yaml")
	if err == nil {
		t.Fatal("expected failure")
	}
	var report struct {
		Results []struct {
			Name     string `json:"name"`
			Failures []struct {
				Kind string `json:"kind"`
			} `json:"failures"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(report.Results) != 1 || report.Results[0].Failures[0].Kind != "format" {
		t.Fatalf("report = %+v", report)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info["tool"] != "calfmt" || info["git_commit"] != "unknown" {
		t.Fatalf("info = %v", info)
	}
}

func TestReadFormat(t *testing.T) {
	if got, err := readFormat(" JSON ", "pretty", "json"); err != nil || got != "json" {
		t.Fatalf("readFormat = %q, %v", got, err)
	}
	if _, err := readFormat("xml", "pretty", "json"); err == nil {
		t.Fatal("xml accepted")
	}
}

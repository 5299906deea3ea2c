package ui_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"calfmt/internal/ui"
)

var fixed = time.Date(2008, time.July, 5, 13, 4, 9, 0, time.UTC)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name, src, sample string
		canonical         string
		formatted         string
		resolved          string
		problem           string
	}{
		{
			name:      "date",
			src:       "yyyy-MM-dd",
			sample:    "2009-06-30",
			canonical: "Value(ISO.Year,4,19,EXCEEDS_PAD)'-'Value(ISO.MonthOfYear,2)'-'Value(ISO.DayOfMonth,2)",
			formatted: "2008-07-05",
			resolved:  "2009-06-30T00:00:00Z",
		},
		{
			name:      "no sample",
			src:       "HH:mm",
			canonical: "Value(ISO.HourOfDay,2)':'Value(ISO.MinuteOfHour,2)",
			formatted: "13:04",
		},
		{
			name:    "bad pattern",
			src:     "yyyy]",
			problem: "pattern:5: ERROR SYN2007",
		},
		{
			name:      "bad sample",
			src:       "HH:mm",
			sample:    "13-04",
			canonical: "Value(ISO.HourOfDay,2)':'Value(ISO.MinuteOfHour,2)",
			formatted: "13:04",
			problem:   "sample:3: ERROR PRS5001",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := ui.Evaluate(tt.src, tt.sample, "en", fixed)
			if ev.Canonical != tt.canonical {
				t.Errorf("Canonical = %q, want %q", ev.Canonical, tt.canonical)
			}
			if ev.Formatted != tt.formatted {
				t.Errorf("Formatted = %q, want %q", ev.Formatted, tt.formatted)
			}
			if ev.Resolved != tt.resolved {
				t.Errorf("Resolved = %q, want %q", ev.Resolved, tt.resolved)
			}
			if tt.problem == "" {
				if len(ev.Problems) != 0 {
					t.Errorf("unexpected problems: %q", ev.Problems)
				}
				return
			}
			if len(ev.Problems) != 1 || !strings.HasPrefix(ev.Problems[0], tt.problem) {
				t.Errorf("Problems = %q, want prefix %q", ev.Problems, tt.problem)
			}
		})
	}
}

func TestPlaygroundTyping(t *testing.T) {
	m := ui.NewPlayground("yyyy", "en", func() time.Time { return fixed })
	if !strings.Contains(m.View(), "Value(ISO.Year,4,19,EXCEEDS_PAD)") {
		t.Fatalf("initial view:\n%s", m.View())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-MM")})
	if !strings.Contains(m.View(), "2008-07") {
		t.Fatalf("view after typing:\n%s", m.View())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2010-03")})
	if !strings.Contains(m.View(), "ISO.MonthOfYear=3") {
		t.Fatalf("view after sample:\n%s", m.View())
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
		t.Fatal("esc should quit")
	}
}

package pattern_test

import (
	"errors"
	"strings"
	"testing"

	"calfmt/internal/diag"
	"calfmt/internal/format"
	"calfmt/internal/iso"
	"calfmt/internal/pattern"
	"calfmt/internal/trace"

	"github.com/google/go-cmp/cmp"
)

func TestCompile_Canonical(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"d", "Value(ISO.DayOfMonth)"},
		{"dd", "Value(ISO.DayOfMonth,2)"},
		{"ddd", "Value(ISO.DayOfMonth,3)"},
		{"y", "Value(ISO.Year)"},
		{"yy", "ReducedValue(ISO.Year,2,2000)"},
		{"yyyy", "Value(ISO.Year,4,19,EXCEEDS_PAD)"},
		{"YYY", "Value(ISO.WeekBasedYear,3,19,EXCEEDS_PAD)"},
		{"YY", "ReducedValue(ISO.WeekBasedYear,2,2000)"},
		{"Q", "Value(ISO.QuarterOfYear)"},
		{"QQQ", "Text(ISO.QuarterOfYear,SHORT)"},
		{"M", "Value(ISO.MonthOfYear)"},
		{"MM", "Value(ISO.MonthOfYear,2)"},
		{"MMM", "Text(ISO.MonthOfYear,SHORT)"},
		{"MMMM", "Text(ISO.MonthOfYear)"},
		{"MMMMM", "Text(ISO.MonthOfYear,NARROW)"},
		{"q", "Value(ISO.MonthOfQuarter)"},
		{"ww", "Value(ISO.WeekOfWeekBasedYear,2)"},
		{"DDD", "Value(ISO.DayOfYear,3)"},
		{"F", "Value(ISO.WeekOfMonth)"},
		{"E", "Value(ISO.DayOfWeek)"},
		{"EEEE", "Text(ISO.DayOfWeek)"},
		{"a", "Text(ISO.AmPmOfDay,SHORT)"},
		{"aaa", "Text(ISO.AmPmOfDay,SHORT)"},
		{"aaaa", "Text(ISO.AmPmOfDay)"},
		{"HH", "Value(ISO.HourOfDay,2)"},
		{"K", "Value(ISO.HourOfAmPm)"},
		{"kk", "Value(ISO.ClockHourOfDay,2)"},
		{"h", "Value(ISO.ClockHourOfAmPm)"},
		{"mm", "Value(ISO.MinuteOfHour,2)"},
		{"ss", "Value(ISO.SecondOfMinute,2)"},
		{"SSS", "Value(ISO.MilliOfSecond,3)"},
		{"A", "Value(ISO.MilliOfDay)"},
		{"n", "Value(ISO.NanoOfSecond)"},
		{"N", "Value(ISO.NanoOfDay)"},
		{"z", "ZoneText(SHORT)"},
		{"zzz", "ZoneText(SHORT)"},
		{"zzzz", "ZoneText(FULL)"},
		{"I", "ZoneId()"},
		{"IIIII", "ZoneId()"},
		{"Z", "Offset('+0000',+HHMM)"},
		{"ZZ", "Offset('+0000',+HHMM)"},
		{"ZZZ", "Offset('+00:00',+HH:MM)"},
		{"X", "Offset('Z',+HH)"},
		{"XX", "Offset('Z',+HHMM)"},
		{"XXX", "Offset('Z',+HH:MM)"},
		{"XXXX", "Offset('Z',+HHMMss)"},
		{"XXXXX", "Offset('Z',+HH:MM:ss)"},
		{"ppH", "Pad(Value(ISO.HourOfDay),2)"},
		{"pppMMM", "Pad(Text(ISO.MonthOfYear,SHORT),3)"},
		{"fSSS", "Fraction(ISO.MilliOfSecond,3,3)"},
		{"ffn", "Fraction(ISO.NanoOfSecond,1,9)"},
		{"fnnn", "Fraction(ISO.NanoOfSecond,3,3)"},
		{"pppfnnn", "Pad(Fraction(ISO.NanoOfSecond,3,3),3)"},
		{"yyyy-MM-dd", "Value(ISO.Year,4,19,EXCEEDS_PAD)'-'Value(ISO.MonthOfYear,2)'-'Value(ISO.DayOfMonth,2)"},
		{"HH'h'mm", "Value(ISO.HourOfDay,2)'h'Value(ISO.MinuteOfHour,2)"},
		{"'o''clock'", "'o''clock'"},
		{"''", "''"},
		{"'T'", "'T'"},
		{"é", "'é'"},
		{"yyyy[-MM[-dd", "Value(ISO.Year,4,19,EXCEEDS_PAD)['-'Value(ISO.MonthOfYear,2)['-'Value(ISO.DayOfMonth,2)]]"},
		{"[HH]:mm", "[Value(ISO.HourOfDay,2)]':'Value(ISO.MinuteOfHour,2)"},
		{"[]", ""},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			f, err := pattern.Compile(tc.pattern, pattern.Options{})
			if err != nil {
				t.Fatalf("Compile(%q): %v", tc.pattern, err)
			}
			if got := f.String(); got != tc.want {
				t.Fatalf("Compile(%q) = %q, want %q", tc.pattern, got, tc.want)
			}
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	cases := []struct {
		pattern string
		code    diag.Code
		start   uint32
		end     uint32
	}{
		{"'", diag.LexUnterminatedQuote, 0, 1},
		{"dd'abc", diag.LexUnterminatedQuote, 2, 6},
		{"]", diag.SynUnmatchedBracket, 0, 1},
		{"[d]]", diag.SynUnmatchedBracket, 3, 4},
		{"MMMMMM", diag.SynTooManyLetters, 0, 6},
		{"aaaaaa", diag.SynTooManyLetters, 0, 6},
		{"zzzzzz", diag.SynTooManyLetters, 0, 6},
		{"IIIIII", diag.SynTooManyLetters, 0, 6},
		{"ZZZZ", diag.SynTooManyLetters, 0, 4},
		{"XXXXXX", diag.SynTooManyLetters, 0, 6},
		{strings.Repeat("y", 20), diag.SynTooManyLetters, 0, 20},
		{strings.Repeat("d", 20), diag.SynTooManyLetters, 0, 20},
		{"b", diag.SynUnknownLetter, 0, 1},
		{"yyyy-MM-dd'T'HH:mm:ss.SSSG", diag.SynUnknownLetter, 25, 26},
		{"p", diag.SynDanglingPad, 0, 1},
		{"dd pp", diag.SynDanglingPad, 3, 5},
		{"pp'x'", diag.SynPadTarget, 2, 5},
		{"p[d]", diag.SynPadTarget, 1, 2},
		{"pZ", diag.SynPadTarget, 1, 2},
		{"pz", diag.SynPadTarget, 1, 2},
		{"pp-", diag.SynPadTarget, 2, 3},
		{"pb", diag.SynPadTarget, 1, 2},
		{"pMMMMMM", diag.SynTooManyLetters, 1, 7},
		{"f", diag.SynDanglingFraction, 0, 1},
		{"fy", diag.SynFractionTarget, 1, 2},
		{"fa", diag.SynFractionTarget, 1, 2},
		{"fM", diag.SynFractionTarget, 1, 2},
		{"f'x'", diag.SynFractionTarget, 1, 4},
		{"fffH", diag.SynFractionRun, 0, 3},
		{"fnnnnnnnnnn", diag.BldFractionWidths, 0, 11},
		{"ff" + strings.Repeat("n", 10), diag.BldFractionWidths, 0, 12},
	}
	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			_, err := pattern.Compile(tc.pattern, pattern.Options{})
			if !errors.Is(err, format.ErrConstruction) {
				t.Fatalf("Compile(%q) = %v, want a construction error", tc.pattern, err)
			}
			var ce *format.ConstructionError
			errors.As(err, &ce)
			if ce.Code != tc.code {
				t.Fatalf("code = %s (%v), want %s", ce.Code.ID(), err, tc.code.ID())
			}
			if ce.Pattern != tc.pattern {
				t.Fatalf("Pattern = %q", ce.Pattern)
			}
			if ce.Span.Start != tc.start || ce.Span.End != tc.end {
				t.Fatalf("span = %s, want %d-%d", ce.Span, tc.start, tc.end)
			}
		})
	}
}

func TestAppend_RestoresBuilder(t *testing.T) {
	b := format.NewBuilder()
	if err := b.AppendLiteral("x"); err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(8)
	err := pattern.Append(b, "yyyy[-MMb", pattern.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := b.ToFormatter().String(); got != "'x'" {
		t.Fatalf("builder = %q after failed append", got)
	}
	if b.OpenOptionals() != 0 {
		t.Fatalf("OpenOptionals = %d after failed append", b.OpenOptionals())
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynUnknownLetter {
		t.Fatalf("reported %v", bag.Items())
	}

	if err := pattern.Append(b, "[dd", pattern.Options{}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	// A pattern cannot close a group it did not open.
	if err := pattern.Append(b, "]", pattern.Options{}); err == nil {
		t.Fatal("closing a foreign group succeeded")
	}
	if err := pattern.Append(b, "'-'MM", pattern.Options{}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got, want := b.ToFormatter().String(), "'x'[Value(ISO.DayOfMonth,2)'-'Value(ISO.MonthOfYear,2)]"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestCompile_ParseExamples(t *testing.T) {
	cases := []struct {
		pattern, text string
		want          map[string]int64
	}{
		{"yy", "12", map[string]int64{"ISO.Year": 2012}},
		{"yyyy[-MM[-dd", "2008-07", map[string]int64{"ISO.Year": 2008, "ISO.MonthOfYear": 7}},
		{"yyyyMMdd", "20090630", map[string]int64{"ISO.Year": 2009, "ISO.MonthOfYear": 6, "ISO.DayOfMonth": 30}},
		{"dd MMM yyyy", "05 Jul 2008", map[string]int64{"ISO.DayOfMonth": 5, "ISO.MonthOfYear": 7, "ISO.Year": 2008}},
		{"EEEE, d MMMM", "Saturday, 5 July", map[string]int64{"ISO.DayOfWeek": 6, "ISO.DayOfMonth": 5, "ISO.MonthOfYear": 7}},
		{"HH:mm:ss.ffn", "13:04:09.5", map[string]int64{"ISO.HourOfDay": 13, "ISO.MinuteOfHour": 4, "ISO.SecondOfMinute": 9, "ISO.NanoOfSecond": 500_000_000}},
		{"h:mm a", "1:04 PM", map[string]int64{"ISO.ClockHourOfAmPm": 1, "ISO.MinuteOfHour": 4, "ISO.AmPmOfDay": 1}},
		{"ppd'|'", " 5|", nil},
	}
	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			f, err := pattern.Compile(tc.pattern, pattern.Options{Locale: "en"})
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			p, err := f.Parse(tc.text)
			if tc.want == nil {
				if err == nil {
					t.Fatalf("Parse(%q) succeeded: %s", tc.text, p)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.text, err)
			}
			if diff := cmp.Diff(tc.want, p.Values()); diff != "" {
				t.Fatalf("Parse(%q) (-want +got):\n%s", tc.text, diff)
			}
		})
	}
}

func TestCompile_Locale(t *testing.T) {
	f, err := pattern.Compile("EEEE d MMMM", pattern.Options{Locale: "fr-FR"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got, err := f.Format(iso.Fields{"ISO.DayOfWeek": 6, "ISO.DayOfMonth": 5, "ISO.MonthOfYear": 8})
	if err != nil || got != "samedi 5 août" {
		t.Fatalf("Format = %q, %v", got, err)
	}
}

func TestCompile_Trace(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelPhase)
	if _, err := pattern.Compile("yyyy-MM", pattern.Options{Tracer: ring}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	end := events[1]
	if end.Name != "compile" || end.Detail != "3 elements" || end.Extra["pattern"] != "yyyy-MM" {
		t.Fatalf("end event = %+v", end)
	}
}

func TestLetters(t *testing.T) {
	seen := make(map[byte]bool)
	for _, l := range pattern.Letters() {
		if seen[l.Letter] {
			t.Fatalf("letter %c listed twice", l.Letter)
		}
		seen[l.Letter] = true
		if l.Letter == 'p' || l.Letter == 'f' || l.Letter == 'z' || l.Letter == 'Z' || l.Letter == 'X' || l.Letter == 'I' {
			continue
		}
		if _, err := pattern.Compile(string(l.Letter), pattern.Options{}); err != nil {
			t.Fatalf("letter %c: %v", l.Letter, err)
		}
	}
	if len(seen) != 27 {
		t.Fatalf("%d letters, want 27", len(seen))
	}
}

func TestMustCompile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustCompile did not panic")
		}
	}()
	pattern.MustCompile("]")
}

package format_test

import (
	"errors"
	"testing"

	"calfmt/internal/diag"
	"calfmt/internal/field"
	"calfmt/internal/format"
	"calfmt/internal/iso"
)

func TestBuilder_String(t *testing.T) {
	cases := []struct {
		name  string
		build func(b *format.Builder) error
		want  string
	}{
		{"plain value", func(b *format.Builder) error { return b.AppendValue(iso.DayOfMonth) },
			"Value(ISO.DayOfMonth)"},
		{"fixed width", func(b *format.Builder) error { return b.AppendValueWidth(iso.DayOfMonth, 2) },
			"Value(ISO.DayOfMonth,2)"},
		{"range", func(b *format.Builder) error {
			return b.AppendValueRange(iso.Year, 4, 10, format.SignExceedsPad)
		}, "Value(ISO.Year,4,10,EXCEEDS_PAD)"},
		{"equal range normal", func(b *format.Builder) error {
			return b.AppendValueRange(iso.MonthOfYear, 2, 2, format.SignNormal)
		}, "Value(ISO.MonthOfYear,2)"},
		{"equal range signed", func(b *format.Builder) error {
			return b.AppendValueRange(iso.MonthOfYear, 2, 2, format.SignNever)
		}, "Value(ISO.MonthOfYear,2,2,NEVER)"},
		{"reduced", func(b *format.Builder) error { return b.AppendValueReduced(iso.Year, 2, 2000) },
			"ReducedValue(ISO.Year,2,2000)"},
		{"fraction", func(b *format.Builder) error { return b.AppendFraction(iso.NanoOfSecond, 0, 9) },
			"Fraction(ISO.NanoOfSecond,0,9)"},
		{"text", func(b *format.Builder) error { return b.AppendText(iso.MonthOfYear) },
			"Text(ISO.MonthOfYear,SHORT)"},
		{"text full", func(b *format.Builder) error { return b.AppendTextStyle(iso.DayOfWeek, field.Full) },
			"Text(ISO.DayOfWeek)"},
		{"text narrow", func(b *format.Builder) error { return b.AppendTextStyle(iso.DayOfWeek, field.Narrow) },
			"Text(ISO.DayOfWeek,NARROW)"},
		{"offset id", func(b *format.Builder) error { b.AppendOffsetID(); return nil },
			"Offset('Z',+HH:MM:ss)"},
		{"offset", func(b *format.Builder) error { return b.AppendOffset("+0000", "+HHMM") },
			"Offset('+0000',+HHMM)"},
		{"zone id", func(b *format.Builder) error { b.AppendZoneID(); return nil }, "ZoneId()"},
		{"zone text", func(b *format.Builder) error { return b.AppendZoneText(field.Full) }, "ZoneText(FULL)"},
		{"controls", func(b *format.Builder) error {
			b.ParseCaseInsensitive()
			b.ParseLenient()
			b.ParseCaseSensitive()
			b.ParseStrict()
			return nil
		}, "ParseCaseSensitive(false)ParseStrict(false)ParseCaseSensitive(true)ParseStrict(true)"},
		{"apostrophe", func(b *format.Builder) error { return b.AppendLiteral("'") }, "''"},
		{"single char", func(b *format.Builder) error { return b.AppendLiteral("-") }, "'-'"},
		{"literal run", func(b *format.Builder) error { return b.AppendLiteral("it's") }, "'it''s'"},
		{"pad", func(b *format.Builder) error {
			must(t, b.PadNext(5))
			return b.AppendValue(iso.DayOfMonth)
		}, "Pad(Value(ISO.DayOfMonth),5)"},
		{"pad char", func(b *format.Builder) error {
			must(t, b.PadNextWith(3, '*'))
			return b.AppendValue(iso.DayOfMonth)
		}, "Pad(Value(ISO.DayOfMonth),3,'*')"},
		{"optional", func(b *format.Builder) error {
			b.OptionalStart()
			must(t, b.AppendValue(iso.Year))
			return b.OptionalEnd()
		}, "[Value(ISO.Year)]"},
		{"empty optional", func(b *format.Builder) error {
			b.OptionalStart()
			return b.OptionalEnd()
		}, ""},
		{"padded optional", func(b *format.Builder) error {
			must(t, b.PadNext(4))
			b.OptionalStart()
			must(t, b.AppendValue(iso.Year))
			return b.OptionalEnd()
		}, "Pad([Value(ISO.Year)],4)"},
		{"pad survives empty optional", func(b *format.Builder) error {
			must(t, b.PadNext(3))
			b.OptionalStart()
			must(t, b.OptionalEnd())
			return b.AppendLiteral("x")
		}, "Pad('x',3)"},
		{"auto close", func(b *format.Builder) error {
			must(t, b.AppendValueRange(iso.Year, 4, 19, format.SignExceedsPad))
			b.OptionalStart()
			must(t, b.AppendLiteral("-"))
			must(t, b.AppendValueWidth(iso.MonthOfYear, 2))
			b.OptionalStart()
			must(t, b.AppendLiteral("-"))
			return b.AppendValueWidth(iso.DayOfMonth, 2)
		}, "Value(ISO.Year,4,19,EXCEEDS_PAD)['-'Value(ISO.MonthOfYear,2)['-'Value(ISO.DayOfMonth,2)]]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := build(t, tc.build)
			if got := f.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuilder_Errors(t *testing.T) {
	cases := []struct {
		name string
		call func(b *format.Builder) error
		code diag.Code
	}{
		{"width zero", func(b *format.Builder) error { return b.AppendValueWidth(iso.DayOfMonth, 0) }, diag.BldWidthRange},
		{"width twenty", func(b *format.Builder) error { return b.AppendValueWidth(iso.DayOfMonth, 20) }, diag.BldWidthRange},
		{"nil field", func(b *format.Builder) error { return b.AppendValue(nil) }, diag.BldNilField},
		{"min above max", func(b *format.Builder) error {
			return b.AppendValueRange(iso.Year, 5, 4, format.SignNormal)
		}, diag.BldWidthOrder},
		{"max too wide", func(b *format.Builder) error {
			return b.AppendValueRange(iso.Year, 1, 20, format.SignNormal)
		}, diag.BldWidthRange},
		{"bad sign", func(b *format.Builder) error {
			return b.AppendValueRange(iso.Year, 1, 2, format.SignStyle(42))
		}, diag.BldBadStyle},
		{"reduced width", func(b *format.Builder) error { return b.AppendValueReduced(iso.Year, 19, 2000) }, diag.BldReducedWidth},
		{"fraction widths", func(b *format.Builder) error { return b.AppendFraction(iso.NanoOfSecond, 0, 10) }, diag.BldFractionWidths},
		{"fraction order", func(b *format.Builder) error { return b.AppendFraction(iso.NanoOfSecond, 5, 3) }, diag.BldWidthOrder},
		{"fraction field", func(b *format.Builder) error { return b.AppendFraction(iso.DayOfMonth, 0, 9) }, diag.BldFractionField},
		{"text style", func(b *format.Builder) error { return b.AppendTextStyle(iso.MonthOfYear, field.TextStyle(9)) }, diag.BldBadStyle},
		{"empty literal", func(b *format.Builder) error { return b.AppendLiteral("") }, diag.BldEmptyLiteral},
		{"pad zero", func(b *format.Builder) error { return b.PadNext(0) }, diag.BldPadWidth},
		{"optional end", func(b *format.Builder) error { return b.OptionalEnd() }, diag.BldNoOptional},
		{"nil formatter", func(b *format.Builder) error { return b.Append(nil) }, diag.BldNilFormatter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := format.NewBuilder()
			must(t, b.AppendLiteral("x"))
			err := tc.call(b)
			if !errors.Is(err, format.ErrConstruction) {
				t.Fatalf("err = %v, want a construction error", err)
			}
			if code := errCode(t, err); code != tc.code {
				t.Fatalf("code = %s, want %s", code.ID(), tc.code.ID())
			}
			if got := b.ToFormatter().String(); got != "'x'" {
				t.Fatalf("builder changed after failure: %q", got)
			}
		})
	}
}

func TestBuilder_OffsetPatterns(t *testing.T) {
	for _, p := range []string{"+HH", "+HHMM", "+HH:MM", "+HHMMss", "+HH:MM:ss", "+HHMMSS", "+HH:MM:SS"} {
		if err := format.NewBuilder().AppendOffset("Z", p); err != nil {
			t.Fatalf("AppendOffset(%q): %v", p, err)
		}
	}
	for _, p := range []string{"", "HH", "+hh", "+H", "+HH-MM", "+HH:MMss", "+HHmm", "+HH:MM:SS "} {
		err := format.NewBuilder().AppendOffset("Z", p)
		if err == nil || errCode(t, err) != diag.BldOffsetPattern {
			t.Fatalf("AppendOffset(%q) = %v, want offset pattern error", p, err)
		}
	}
}

func TestBuilder_ValueWidths(t *testing.T) {
	for w := 1; w <= 19; w++ {
		if err := format.NewBuilder().AppendValueWidth(iso.Year, w); err != nil {
			t.Fatalf("AppendValueWidth(%d): %v", w, err)
		}
	}
}

func TestBuilder_ToFormatterKeepsBuilding(t *testing.T) {
	b := format.NewBuilder()
	must(t, b.AppendValue(iso.Year))
	b.OptionalStart()
	must(t, b.AppendLiteral("-"))

	first := b.ToFormatter()
	if b.OpenOptionals() != 1 {
		t.Fatalf("OpenOptionals = %d after ToFormatter, want 1", b.OpenOptionals())
	}
	must(t, b.AppendValue(iso.MonthOfYear))
	must(t, b.OptionalEnd())

	if got, want := first.String(), "Value(ISO.Year)['-']"; got != want {
		t.Fatalf("first = %q, want %q", got, want)
	}
	if got, want := b.ToFormatter().String(), "Value(ISO.Year)['-'Value(ISO.MonthOfYear)]"; got != want {
		t.Fatalf("second = %q, want %q", got, want)
	}
}

func TestBuilder_Checkpoint(t *testing.T) {
	b := format.NewBuilder()
	must(t, b.AppendValue(iso.Year))
	cp := b.Checkpoint()
	b.OptionalStart()
	must(t, b.PadNext(2))
	must(t, b.AppendLiteral("-"))

	must(t, b.Restore(cp))
	if b.OpenOptionals() != 0 {
		t.Fatalf("OpenOptionals = %d after restore", b.OpenOptionals())
	}
	must(t, b.AppendLiteral("!"))
	if got, want := b.ToFormatter().String(), "Value(ISO.Year)'!'"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	err := format.NewBuilder().Restore(cp)
	if err == nil || errCode(t, err) != diag.BldBadCheckpoint {
		t.Fatalf("foreign Restore = %v", err)
	}
}

func TestBuilder_AppendFormatter(t *testing.T) {
	date := build(t,
		func(b *format.Builder) error { return b.AppendValueWidth(iso.Year, 4) },
		func(b *format.Builder) error { return b.AppendLiteral("-") },
		func(b *format.Builder) error { return b.AppendValueWidth(iso.MonthOfYear, 2) },
	)
	f := build(t,
		func(b *format.Builder) error { return b.Append(date) },
		func(b *format.Builder) error { return b.AppendOptional(date) },
	)
	want := "Value(ISO.Year,4)'-'Value(ISO.MonthOfYear,2)[Value(ISO.Year,4)'-'Value(ISO.MonthOfYear,2)]"
	if got := f.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got, want := date.String(), "Value(ISO.Year,4)'-'Value(ISO.MonthOfYear,2)"; got != want {
		t.Fatalf("source formatter changed: %q", got)
	}
}

func TestSignStyle(t *testing.T) {
	for st := format.SignNormal; st <= format.SignExceedsPad; st++ {
		got, err := format.ParseSignStyle(st.String())
		if err != nil || got != st {
			t.Fatalf("ParseSignStyle(%q) = %v, %v", st.String(), got, err)
		}
	}
	if _, err := format.ParseSignStyle("SOMETIMES"); err == nil {
		t.Fatal("unknown sign style accepted")
	}
	if format.SignStyle(9).Valid() {
		t.Fatal("SignStyle(9) reported valid")
	}
}

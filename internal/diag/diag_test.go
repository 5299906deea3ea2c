package diag

import (
	"testing"

	"calfmt/internal/source"
)

func TestCode_ID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexUnterminatedQuote, "LEX1001"},
		{SynUnknownLetter, "SYN2001"},
		{BldWidthRange, "BLD3001"},
		{PrtFieldMissing, "PRT4001"},
		{PrsConflict, "PRS5003"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Fatalf("Code(%d).ID() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestCode_TitleFallback(t *testing.T) {
	if got, want := Code(4999).Title(), "Unknown error"; got != want {
		t.Fatalf("Title() = %q, want %q", got, want)
	}
	if got, want := SynUnmatchedBracket.String(), "[SYN2007]: Unmatched optional bracket"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestBag_LimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}
	r.Report(SynTooManyLetters, SevError, source.Range(4, 10), "too many", nil)
	r.Report(LexUnterminatedQuote, SevError, source.Range(0, 3), "quote", nil)
	r.Report(SynTooManyLetters, SevError, source.Range(4, 10), "too many", nil)
	r.Report(SynUnknownLetter, SevError, source.Range(11, 12), "dropped", nil)

	if bag.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", bag.Len())
	}
	bag.Sort()
	if got := bag.Items()[0].Code; got != LexUnterminatedQuote {
		t.Fatalf("first after sort = %s, want LEX1001", got.ID())
	}
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Len() after Dedup = %d, want 2", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatalf("HasErrors() = false, want true")
	}
	if d, ok := bag.First(); !ok || d.Code != LexUnterminatedQuote {
		t.Fatalf("First() = %v/%v", d.Code.ID(), ok)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		ReportError(r, PrsMismatch, source.At(2), "mismatch").Emit()
	}
	ReportWarning(r, PrsMismatch, source.At(2), "mismatch").Emit()
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
}

func TestReportBuilder_EmitOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SynPadTarget, source.Range(0, 2), "pad").
		WithNote(source.Range(2, 3), "target here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", bag.Len())
	}
	if got := len(bag.Items()[0].Notes); got != 1 {
		t.Fatalf("notes = %d, want 1", got)
	}
}

func TestDiagnostic_Error(t *testing.T) {
	d := Diagnostic{Severity: SevError, Code: PrsTrailing, Message: "unparsed text", Primary: source.Range(3, 5)}
	if got, want := d.Error(), "ERROR PRS5004 at 3-5: unparsed text"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

// Package testkit holds invariant checks shared by tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"calfmt/internal/source"
	"calfmt/internal/token"
)

// CheckTokenSpans runs the span invariants of a lexed pattern:
// 1) every token but EOF has a non-empty span inside src
// 2) spans are contiguous, so the tokens tile src exactly
// 3) a token's text is the slice of src under its span
// 4) the stream ends with one empty EOF token at len(src)
func CheckTokenSpans(src string, tokens []token.Token) error {
	end, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("pattern length overflow: %w", err)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("no tokens")
	}
	var covered source.Span
	for i, tok := range tokens {
		sp := tok.Span
		if tok.Kind == token.EOF {
			if i != len(tokens)-1 {
				return fmt.Errorf("EOF at index %d of %d", i, len(tokens))
			}
			if !sp.Empty() || sp.Start != end {
				return fmt.Errorf("EOF span %v, want %d-%d", sp, end, end)
			}
			break
		}
		if sp.Empty() {
			return fmt.Errorf("token %d (%s) has an empty span", i, tok.Kind)
		}
		if sp.End > end {
			return fmt.Errorf("token %d (%s) span %v beyond pattern end %d", i, tok.Kind, sp, end)
		}
		if tok.Text != sp.Slice(src) {
			return fmt.Errorf("token %d (%s) text %q, span covers %q", i, tok.Kind, tok.Text, sp.Slice(src))
		}
		if i == 0 {
			if sp.Start != 0 {
				return fmt.Errorf("first token starts at %d", sp.Start)
			}
			covered = sp
			continue
		}
		if sp.Start != covered.End {
			return fmt.Errorf("token %d (%s) span %v does not follow %v", i, tok.Kind, sp, covered)
		}
		covered = covered.Cover(sp)
	}
	if tokens[len(tokens)-1].Kind != token.EOF {
		return fmt.Errorf("missing EOF token")
	}
	if len(tokens) > 1 && covered.Len() != end {
		return fmt.Errorf("tokens cover %v of %d bytes", covered, end)
	}
	return nil
}

package diagfmt

import (
	"unicode/utf8"

	"calfmt/internal/source"

	"github.com/mattn/go-runewidth"
)

// column returns the 1-based rune column of a byte offset in text.
func column(text string, off uint32) uint32 {
	if int(off) > len(text) {
		off = uint32(len(text))
	}
	n := utf8.RuneCountInString(text[:off])
	return uint32(n) + 1
}

// caret returns the indentation and the marker for a span, measured in
// display cells so wide runes line up.
func caret(text string, sp source.Span) (indent int, marker string) {
	start := min(sp.StartInt(), len(text))
	end := min(max(sp.EndInt(), start), len(text))
	indent = runewidth.StringWidth(text[:start])
	w := runewidth.StringWidth(text[start:end])
	if w <= 0 {
		return indent, "^"
	}
	buf := make([]byte, 0, w)
	buf = append(buf, '^')
	for i := 1; i < w; i++ {
		buf = append(buf, '~')
	}
	return indent, string(buf)
}

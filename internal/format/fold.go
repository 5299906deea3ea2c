package format

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// matchAt matches want at pos honouring the active case sensitivity and
// returns the end of the match.
func (ps *parseState) matchAt(pos int, want string) (int, bool) {
	text := ps.text
	if ps.caseSensitive {
		if strings.HasPrefix(text[pos:], want) {
			return pos + len(want), true
		}
		return pos, false
	}
	i := pos
	for _, wr := range want {
		if i >= len(text) {
			return pos, false
		}
		tr, size := utf8.DecodeRuneInString(text[i:])
		if !ps.equalFold(tr, wr) {
			return pos, false
		}
		i += size
	}
	return i, true
}

func (ps *parseState) equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		return toLowerASCII(a) == toLowerASCII(b)
	}
	if !ps.hasFolder {
		// A Caser keeps state, so each parse owns one.
		ps.folder = cases.Fold()
		ps.hasFolder = true
	}
	return ps.folder.String(string(a)) == ps.folder.String(string(b))
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

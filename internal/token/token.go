package token

import (
	"calfmt/internal/source"
)

// Token represents a single pattern token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value string // unescaped literal for Quoted and Char
	// Letter and Count describe a Letters run.
	Letter byte
	Count  int
}

// IsLiteral reports whether the token produces a literal node.
func (t Token) IsLiteral() bool {
	return t.Kind == Quoted || t.Kind == Char
}

// IsBracket reports whether the token is an optional-section bracket.
func (t Token) IsBracket() bool {
	return t.Kind == LBracket || t.Kind == RBracket
}

// IsLetterRun reports whether the token is a run of the given letter.
func (t Token) IsLetterRun(letter byte) bool { return t.Kind == Letters && t.Letter == letter }

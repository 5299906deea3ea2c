package lexer

import (
	"strings"
	"unicode/utf8"

	"calfmt/internal/diag"
	"calfmt/internal/token"
)

// isPatternLetter reports whether b starts a letter run. Only ASCII letters
// are pattern letters; every other character is literal.
func isPatternLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (lx *Lexer) scanLetters() token.Token {
	start := lx.cursor.Mark()
	letter := lx.cursor.Bump()
	count := 1
	for lx.cursor.Eat(letter) {
		count++
	}
	return token.Token{
		Kind:   token.Letters,
		Span:   lx.cursor.SpanFrom(start),
		Text:   lx.cursor.TextFrom(start),
		Letter: letter,
		Count:  count,
	}
}

// scanQuoted reads a quoted run such as `'o''clock'`. A doubled apostrophe
// inside the quotes is an escaped one, and the empty run `''` is a lone
// apostrophe.
func (lx *Lexer) scanQuoted() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	bodyStart := lx.cursor.Off
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != '\'' {
			lx.cursor.Bump()
			continue
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '\'' && b1 == '\'' {
			lx.cursor.Off += 2
			continue
		}
		body := lx.src[bodyStart:lx.cursor.Off]
		lx.cursor.Bump() // closing quote
		value := "'"
		if body != "" {
			value = strings.ReplaceAll(body, "''", "'")
		}
		return token.Token{
			Kind:  token.Quoted,
			Span:  lx.cursor.SpanFrom(start),
			Text:  lx.cursor.TextFrom(start),
			Value: value,
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedQuote, sp, "unterminated quoted literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
}

func (lx *Lexer) scanSingle(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	_, size := utf8.DecodeRuneInString(lx.src[lx.cursor.Off:])
	for range size {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	return token.Token{Kind: token.Char, Span: lx.cursor.SpanFrom(start), Text: text, Value: text}
}

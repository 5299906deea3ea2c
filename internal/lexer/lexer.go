package lexer

import (
	"calfmt/internal/source"
	"calfmt/internal/token"
)

type Lexer struct {
	src    string
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
}

func New(src string, opts Options) *Lexer {
	return &Lexer{
		src:    src,
		cursor: NewCursor(src),
		opts:   opts,
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isPatternLetter(ch):
		return lx.scanLetters()
	case ch == '\'':
		return lx.scanQuoted()
	case ch == '[':
		return lx.scanSingle(token.LBracket)
	case ch == ']':
		return lx.scanSingle(token.RBracket)
	default:
		return lx.scanChar()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Offset reports the byte offset of the next unread token.
func (lx *Lexer) Offset() int {
	if lx.look != nil {
		return lx.look.Span.StartInt()
	}
	return int(lx.cursor.Off)
}

// Tokenize lexes the whole pattern, EOF included.
func Tokenize(src string, opts Options) []token.Token {
	lx := New(src, opts)
	out := make([]token.Token, 0, len(src)/2+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{Start: lx.cursor.Off, End: lx.cursor.Off}
}

package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"calfmt/internal/source"
	"calfmt/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Value string      `json:"value,omitempty"`
	Count int         `json:"count,omitempty"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty prints tokens one per line.
func FormatTokensPretty(w io.Writer, tokens []token.Token, pattern string) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		switch tok.Kind {
		case token.Letters:
			fmt.Fprintf(w, " %c x%d", tok.Letter, tok.Count)
		case token.Quoted:
			fmt.Fprintf(w, " => %q", tok.Value)
		}
		fmt.Fprintf(w, " at %d-%d\n", column(pattern, tok.Span.Start), column(pattern, tok.Span.End))
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON prints tokens as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if tok.Kind == token.Quoted || tok.Kind == token.Char {
			out.Value = tok.Value
		}
		if tok.Kind == token.Letters {
			out.Count = tok.Count
		}
		output = append(output, out)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

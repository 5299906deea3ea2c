package format_test

import (
	"errors"
	"testing"

	"calfmt/internal/diag"
	"calfmt/internal/format"
)

func errCode(t *testing.T, err error) diag.Code {
	t.Helper()
	var ce *format.ConstructionError
	var pe *format.PrintError
	var pa *format.ParseError
	switch {
	case errors.As(err, &ce):
		return ce.Code
	case errors.As(err, &pe):
		return pe.Code
	case errors.As(err, &pa):
		return pa.Code
	}
	t.Fatalf("unexpected error type %T: %v", err, err)
	return 0
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// build runs steps against a fresh builder and returns the formatter.
func build(t *testing.T, steps ...func(b *format.Builder) error) *format.Formatter {
	t.Helper()
	b := format.NewBuilder()
	for _, step := range steps {
		must(t, step(b))
	}
	return b.ToFormatter()
}

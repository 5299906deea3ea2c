package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// readFormat validates a --format value against the allowed set.
func readFormat(value string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (must be %s)", value, strings.Join(allowed, "|"))
}

// writeStructured encodes v as indented JSON or as msgpack.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "msgpack":
		enc := msgpack.NewEncoder(w)
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown structured format %q", format)
	}
}

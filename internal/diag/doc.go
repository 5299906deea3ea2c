// Package diag defines the diagnostic model shared by the pattern lexer,
// the pattern compiler, the builder, and the print/parse engines.
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: numeric identifier with a stable string form (LEX, SYN, BLD,
//     PRT, PRS ranges).
//   - Message: short human text.
//   - Primary: span into the pattern or the parsed text.
//   - Notes: optional secondary spans.
//
// Producers emit through a Reporter; BagReporter collects into a Bag which
// supports limits, sorting, and deduplication. Rendering lives in
// internal/diagfmt.
package diag

// Package trace records what calfmt does while compiling patterns and
// formatting or parsing text. A command opens a span, each compile and call
// nests under it, and parse nodes add point events (optional rollbacks, pad
// windows).
//
//	calfmt parse --trace=- --trace-level=debug 'yyyy[-MM]' 2008-07
//
// Events go to a Stream (written as they happen), a Ring (the last N kept in
// memory and dumped at exit) or both. Levels gate scopes: phase shows command
// and compile spans, detail adds one span per call, debug adds node events.
package trace

// Package token defines lexical token kinds for calendar patterns.
// Invariants:
//   - Token.Text is a slice of the original pattern (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - A Letters token is a run of one ASCII letter repeated Count times.
//   - Quoted carries the unescaped literal in Value; Text keeps the quotes.
//   - An empty quoted run (two apostrophes) is the escape: Value is "'".
package token

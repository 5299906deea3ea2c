package token

// Kind represents the category of a pattern token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (e.g. an unterminated quote).
	Invalid Kind = iota
	// EOF marks the end of the pattern.
	EOF

	// Letters represents a run of one pattern letter, e.g. "yyyy".
	Letters
	// Quoted represents a quoted literal run, e.g. `'T'` or `'o''clock'`.
	Quoted
	// Char represents a single unquoted non-letter character.
	Char

	// LBracket opens an optional section.
	LBracket // [
	// RBracket closes an optional section.
	RBracket // ]
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Letters:
		return "Letters"
	case Quoted:
		return "Quoted"
	case Char:
		return "Char"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	}
	return "Unknown"
}

package format

import "fmt"

// SignStyle controls how a numeric value's sign is printed and parsed.
type SignStyle uint8

const (
	// SignNormal prints '-' for negatives and nothing for positives.
	SignNormal SignStyle = iota
	// SignAlways prints '+' or '-'.
	SignAlways
	// SignNever prints the absolute value.
	SignNever
	// SignNotNegative fails to print negative values.
	SignNotNegative
	// SignExceedsPad prints '+' when the value is wider than the minimum width.
	SignExceedsPad
)

func (s SignStyle) String() string {
	switch s {
	case SignNormal:
		return "NORMAL"
	case SignAlways:
		return "ALWAYS"
	case SignNever:
		return "NEVER"
	case SignNotNegative:
		return "NOT_NEGATIVE"
	case SignExceedsPad:
		return "EXCEEDS_PAD"
	}
	return "UNKNOWN"
}

// Valid reports whether s is a declared style.
func (s SignStyle) Valid() bool {
	return s <= SignExceedsPad
}

// ParseSignStyle accepts the names printed by String.
func ParseSignStyle(s string) (SignStyle, error) {
	for st := SignNormal; st <= SignExceedsPad; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return SignNormal, fmt.Errorf("unknown sign style %q", s)
}

// accepts reports whether a parsed sign is allowed.
func (s SignStyle) accepts(positive, strict, fixedWidth bool) bool {
	switch s {
	case SignNormal:
		return !positive || !strict
	case SignAlways, SignExceedsPad:
		return true
	default:
		return !strict && !fixedWidth
	}
}

package field

import "fmt"

// TextStyle selects the length of a textual representation.
type TextStyle uint8

const (
	Full TextStyle = iota
	Short
	Narrow
)

// Styles lists every style, longest first.
var Styles = []TextStyle{Full, Short, Narrow}

func (s TextStyle) String() string {
	switch s {
	case Full:
		return "FULL"
	case Short:
		return "SHORT"
	case Narrow:
		return "NARROW"
	}
	return "UNKNOWN"
}

// Valid reports whether s is one of the declared styles.
func (s TextStyle) Valid() bool {
	return s <= Narrow
}

// ParseTextStyle accepts FULL, SHORT or NARROW in any case.
func ParseTextStyle(s string) (TextStyle, error) {
	switch s {
	case "FULL", "full", "Full":
		return Full, nil
	case "SHORT", "short", "Short":
		return Short, nil
	case "NARROW", "narrow", "Narrow":
		return Narrow, nil
	}
	return Full, fmt.Errorf("unknown text style %q", s)
}

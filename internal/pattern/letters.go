package pattern

import (
	"calfmt/internal/field"
	"calfmt/internal/iso"
)

// letterKind groups pattern letters by how their runs compile.
type letterKind uint8

const (
	letterNone letterKind = iota
	letterNumeric
	letterYear // y, Y: two letters become a reduced value
	letterText // Q, M, E: three or more letters become text
	letterAmPm
	letterZoneText
	letterZoneID
	letterOffsetZ
	letterOffsetX
	letterPad
	letterFraction
)

var letterKinds = map[byte]letterKind{
	'y': letterYear, 'Y': letterYear,
	'Q': letterText, 'M': letterText, 'E': letterText,
	'a': letterAmPm,
	'q': letterNumeric, 'w': letterNumeric, 'D': letterNumeric, 'd': letterNumeric,
	'F': letterNumeric, 'H': letterNumeric, 'K': letterNumeric, 'k': letterNumeric,
	'h': letterNumeric, 'm': letterNumeric, 's': letterNumeric, 'S': letterNumeric,
	'A': letterNumeric, 'n': letterNumeric, 'N': letterNumeric,
	'z': letterZoneText,
	'I': letterZoneID,
	'Z': letterOffsetZ,
	'X': letterOffsetX,
	'p': letterPad,
	'f': letterFraction,
}

// fractionLetters may follow the fraction prefix.
const fractionLetters = "HKmsSAnN"

// maxRun bounds the run length per kind; longer runs are rejected.
func (k letterKind) maxRun() int {
	switch k {
	case letterNumeric, letterYear:
		return 19
	case letterText, letterAmPm, letterZoneText, letterZoneID, letterOffsetX:
		return 5
	case letterOffsetZ:
		return 3
	case letterFraction:
		return 2
	}
	return 0
}

// fieldElement reports whether the kind reads a single calendar field,
// which is what a pad prefix may wrap.
func (k letterKind) fieldElement() bool {
	switch k {
	case letterNumeric, letterYear, letterText, letterAmPm:
		return true
	}
	return false
}

// textStyleFor maps a text run length to its style.
func textStyleFor(count int) field.TextStyle {
	switch count {
	case 4:
		return field.Full
	case 5:
		return field.Narrow
	}
	return field.Short
}

// offsetX is the offset layout for each X run length.
var offsetX = [...]string{1: "+HH", 2: "+HHMM", 3: "+HH:MM", 4: "+HHMMss", 5: "+HH:MM:ss"}

// Letter describes one pattern letter for help output.
type Letter struct {
	Letter  byte
	Field   string
	Meaning string
}

// Letters lists the pattern letters in table order.
func Letters() []Letter {
	out := make([]Letter, 0, len(letterKinds))
	for _, r := range iso.All() {
		if r.Letter() == 0 {
			continue
		}
		meaning := "number"
		switch letterKinds[r.Letter()] {
		case letterYear:
			meaning = "number; two letters reduce to base 2000"
		case letterText:
			meaning = "number; three or more letters give text"
		case letterAmPm:
			meaning = "text"
		}
		out = append(out, Letter{Letter: r.Letter(), Field: r.ID(), Meaning: meaning})
	}
	return append(out,
		Letter{Letter: 'z', Meaning: "zone name"},
		Letter{Letter: 'I', Meaning: "zone id"},
		Letter{Letter: 'Z', Meaning: "offset +HHMM, ZZZ for +HH:MM"},
		Letter{Letter: 'X', Meaning: "offset with Z for zero, X to XXXXX"},
		Letter{Letter: 'p', Meaning: "pad the next element to the run length"},
		Letter{Letter: 'f', Meaning: "fraction of the next element (f fixed, ff up to nine digits)"},
	)
}

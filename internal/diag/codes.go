package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown error
	UnknownCode Code = 0

	// Pattern lexing
	LexInfo              Code = 1000
	LexUnterminatedQuote Code = 1001

	// Pattern syntax
	SynInfo             Code = 2000
	SynUnknownLetter    Code = 2001
	SynTooManyLetters   Code = 2002
	SynDanglingPad      Code = 2003
	SynPadTarget        Code = 2004
	SynDanglingFraction Code = 2005
	SynFractionTarget   Code = 2006
	SynUnmatchedBracket Code = 2007
	SynFractionRun      Code = 2008

	// Builder construction
	BldInfo           Code = 3000
	BldWidthRange     Code = 3001
	BldWidthOrder     Code = 3002
	BldNilField       Code = 3003
	BldFractionField  Code = 3004
	BldOffsetPattern  Code = 3005
	BldPadWidth       Code = 3006
	BldNoOptional     Code = 3007
	BldEmptyLiteral   Code = 3008
	BldBadStyle       Code = 3009
	BldNilFormatter   Code = 3010
	BldReducedWidth   Code = 3011
	BldNilOffsetText  Code = 3012
	BldBadCheckpoint  Code = 3013
	BldFractionWidths Code = 3014

	// Printing
	PrtInfo          Code = 4000
	PrtFieldMissing  Code = 4001
	PrtWidthExceeded Code = 4002
	PrtNegative      Code = 4003
	PrtPadOverflow   Code = 4004
	PrtOffsetMissing Code = 4005
	PrtZoneMissing   Code = 4006
	PrtFieldRange    Code = 4007

	// Parsing
	PrsInfo      Code = 5000
	PrsMismatch  Code = 5001
	PrsOverflow  Code = 5002
	PrsConflict  Code = 5003
	PrsTrailing  Code = 5004
	PrsPosition  Code = 5005
	PrsSign      Code = 5006
	PrsTooShort  Code = 5007
	PrsNoMatch   Code = 5008
	PrsAmbiguous Code = 5009
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnterminatedQuote: "Unterminated quoted literal",

	SynInfo:             "Syntax information",
	SynUnknownLetter:    "Unknown pattern letter",
	SynTooManyLetters:   "Too many pattern letters",
	SynDanglingPad:      "Pad modifier without a target",
	SynPadTarget:        "Pad modifier cannot apply to this element",
	SynDanglingFraction: "Fraction modifier without a target",
	SynFractionTarget:   "Fraction modifier cannot apply to this element",
	SynUnmatchedBracket: "Unmatched optional bracket",
	SynFractionRun:      "Fraction modifier run must have one or two letters",

	BldInfo:           "Builder information",
	BldWidthRange:     "Width out of range",
	BldWidthOrder:     "Maximum width is less than minimum width",
	BldNilField:       "Field is required",
	BldFractionField:  "Field does not have a fixed range starting at zero",
	BldOffsetPattern:  "Unknown offset pattern",
	BldPadWidth:       "Pad width must be at least one",
	BldNoOptional:     "No optional section is open",
	BldEmptyLiteral:   "Literal is empty",
	BldBadStyle:       "Unknown style",
	BldNilFormatter:   "Formatter is required",
	BldReducedWidth:   "Reduced width out of range",
	BldNilOffsetText:  "No-offset text is required",
	BldBadCheckpoint:  "Checkpoint does not belong to this builder",
	BldFractionWidths: "Fraction width out of range",

	PrtInfo:          "Print information",
	PrtFieldMissing:  "Field is not available",
	PrtWidthExceeded: "Value exceeds maximum width",
	PrtNegative:      "Negative value cannot be printed",
	PrtPadOverflow:   "Padded output exceeds pad width",
	PrtOffsetMissing: "Offset is not available",
	PrtZoneMissing:   "Zone is not available",
	PrtFieldRange:    "Value outside of field range",

	PrsInfo:      "Parse information",
	PrsMismatch:  "Text does not match",
	PrsOverflow:  "Numeric value overflows",
	PrsConflict:  "Conflicting value for field",
	PrsTrailing:  "Unparsed text remains",
	PrsPosition:  "Start position out of range",
	PrsSign:      "Sign not permitted",
	PrsTooShort:  "Too few digits",
	PrsNoMatch:   "No text matches",
	PrsAmbiguous: "Text matches ambiguously",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("BLD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("PRT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

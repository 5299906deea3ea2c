package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"calfmt/internal/field"
)

// nodeKind tags the pipeline node variants.
type nodeKind uint8

const (
	kindLiteral nodeKind = iota
	kindValue
	kindReduced
	kindFraction
	kindText
	kindOffset // also the offset-id form: Offset('Z',+HH:MM:ss)
	kindZoneID
	kindZoneText
	kindCase
	kindStrict
	kindPad
	kindComposite
	kindOptional
)

func (k nodeKind) String() string {
	switch k {
	case kindLiteral:
		return "Literal"
	case kindValue:
		return "Value"
	case kindReduced:
		return "ReducedValue"
	case kindFraction:
		return "Fraction"
	case kindText:
		return "Text"
	case kindOffset:
		return "Offset"
	case kindZoneID:
		return "ZoneId"
	case kindZoneText:
		return "ZoneText"
	case kindCase:
		return "ParseCaseSensitive"
	case kindStrict:
		return "ParseStrict"
	case kindPad:
		return "Pad"
	case kindComposite:
		return "Composite"
	case kindOptional:
		return "Optional"
	}
	return "Unknown"
}

// node is one pipeline element. Nodes are never mutated once built; a
// child slice belongs to exactly one parent.
type node struct {
	kind nodeKind

	// Literal text, or the no-offset text of an Offset.
	text string

	field    field.Field
	minWidth int
	maxWidth int
	sign     SignStyle
	// plain marks the unbounded appendValue(field) form.
	plain bool

	// ReducedValue base; width lives in minWidth/maxWidth.
	base int64

	style  field.TextStyle
	offset offsetPattern
	// flag is the setting of a ParseCaseSensitive/ParseStrict node.
	flag bool

	padWidth int
	padChar  rune

	// children of Composite and Optional; Pad has exactly one.
	children []*node
}

// numericWidth returns the fixed width of a node that takes part in
// adjacent value parsing, or 0.
func (n *node) numericWidth() int {
	switch n.kind {
	case kindValue:
		if !n.plain && n.minWidth == n.maxWidth {
			return n.maxWidth
		}
	case kindReduced:
		return n.minWidth
	}
	return 0
}

func (n *node) isNumeric() bool {
	return n.kind == kindValue || n.kind == kindReduced
}

func (n *node) String() string {
	var sb strings.Builder
	n.render(&sb)
	return sb.String()
}

func (n *node) render(sb *strings.Builder) {
	switch n.kind {
	case kindLiteral:
		sb.WriteString(quoteLiteral(n.text))
	case kindValue:
		switch {
		case n.plain:
			fmt.Fprintf(sb, "Value(%s)", n.field.ID())
		case n.minWidth == n.maxWidth && n.sign == SignNormal:
			fmt.Fprintf(sb, "Value(%s,%d)", n.field.ID(), n.minWidth)
		default:
			fmt.Fprintf(sb, "Value(%s,%d,%d,%s)", n.field.ID(), n.minWidth, n.maxWidth, n.sign)
		}
	case kindReduced:
		fmt.Fprintf(sb, "ReducedValue(%s,%d,%d)", n.field.ID(), n.minWidth, n.base)
	case kindFraction:
		fmt.Fprintf(sb, "Fraction(%s,%d,%d)", n.field.ID(), n.minWidth, n.maxWidth)
	case kindText:
		if n.style == field.Full {
			fmt.Fprintf(sb, "Text(%s)", n.field.ID())
		} else {
			fmt.Fprintf(sb, "Text(%s,%s)", n.field.ID(), n.style)
		}
	case kindOffset:
		fmt.Fprintf(sb, "Offset('%s',%s)", strings.ReplaceAll(n.text, "'", "''"), n.offset)
	case kindZoneID:
		sb.WriteString("ZoneId()")
	case kindZoneText:
		fmt.Fprintf(sb, "ZoneText(%s)", n.style)
	case kindCase:
		sb.WriteString("ParseCaseSensitive(" + strconv.FormatBool(n.flag) + ")")
	case kindStrict:
		sb.WriteString("ParseStrict(" + strconv.FormatBool(n.flag) + ")")
	case kindPad:
		sb.WriteString("Pad(")
		n.children[0].render(sb)
		fmt.Fprintf(sb, ",%d", n.padWidth)
		if n.padChar != ' ' {
			fmt.Fprintf(sb, ",'%c'", n.padChar)
		}
		sb.WriteString(")")
	case kindComposite:
		for _, c := range n.children {
			c.render(sb)
		}
	case kindOptional:
		sb.WriteString("[")
		for _, c := range n.children {
			c.render(sb)
		}
		sb.WriteString("]")
	default:
		panic(fmt.Sprintf("format: unknown node kind %d", n.kind))
	}
}

// quoteLiteral renders literal text the way a pattern would spell it.
func quoteLiteral(s string) string {
	if s == "'" {
		return "''"
	}
	if utf8.RuneCountInString(s) == 1 {
		return "'" + s + "'"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

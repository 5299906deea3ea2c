package format

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
	"unicode/utf8"

	"calfmt/internal/diag"
	"calfmt/internal/field"
)

// exceedPoints[i] is 10^i.
var exceedPoints = [...]int64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
	10000000000, 100000000000, 1000000000000, 10000000000000, 100000000000000,
	1000000000000000, 10000000000000000, 100000000000000000, 1000000000000000000,
}

type printState struct {
	f   *Formatter
	cal field.Calendrical
}

func (f *Formatter) format(cal field.Calendrical) (string, error) {
	ps := printState{f: f, cal: cal}
	var sb strings.Builder
	if err := ps.print(&sb, f.root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (ps *printState) value(f field.Field) (int64, error) {
	v, ok := f.ValueFrom(ps.cal)
	if !ok {
		return 0, &PrintError{Code: diag.PrtFieldMissing, Msg: "unable to obtain value from calendrical", Field: f.ID()}
	}
	return v, nil
}

func (ps *printState) print(sb *strings.Builder, n *node) error {
	switch n.kind {
	case kindLiteral:
		sb.WriteString(n.text)
		return nil
	case kindValue:
		v, err := ps.value(n.field)
		if err != nil {
			return err
		}
		return printNumber(sb, n, v)
	case kindReduced:
		v, err := ps.value(n.field)
		if err != nil {
			return err
		}
		if v == math.MinInt64 {
			v = math.MaxInt64
		}
		if v < 0 {
			v = -v
		}
		return printNumber(sb, n, v%exceedPoints[n.minWidth])
	case kindFraction:
		v, err := ps.value(n.field)
		if err != nil {
			return err
		}
		return printFraction(sb, n, v)
	case kindText:
		v, err := ps.value(n.field)
		if err != nil {
			return err
		}
		if ps.f.text != nil {
			if s, ok := ps.f.text.Text(n.field, v, n.style); ok {
				sb.WriteString(s)
				return nil
			}
		}
		sb.WriteString(strconv.FormatInt(v, 10))
		return nil
	case kindOffset:
		src, ok := ps.cal.(field.OffsetSource)
		if !ok {
			return &PrintError{Code: diag.PrtOffsetMissing, Msg: "unable to obtain offset from calendrical"}
		}
		secs, ok := src.OffsetSeconds()
		if !ok {
			return &PrintError{Code: diag.PrtOffsetMissing, Msg: "unable to obtain offset from calendrical"}
		}
		printOffset(sb, n, secs)
		return nil
	case kindZoneID:
		src, ok := ps.cal.(field.ZoneSource)
		if ok {
			if id, ok := src.ZoneID(); ok {
				sb.WriteString(id)
				return nil
			}
		}
		return &PrintError{Code: diag.PrtZoneMissing, Msg: "unable to obtain zone from calendrical"}
	case kindZoneText:
		src, ok := ps.cal.(field.ZoneSource)
		if ok {
			if name, ok := src.ZoneName(n.style); ok {
				sb.WriteString(name)
				return nil
			}
			if id, ok := src.ZoneID(); ok {
				sb.WriteString(id)
				return nil
			}
		}
		return &PrintError{Code: diag.PrtZoneMissing, Msg: "unable to obtain zone from calendrical"}
	case kindCase, kindStrict:
		return nil
	case kindPad:
		var inner strings.Builder
		if err := ps.print(&inner, n.children[0]); err != nil {
			return err
		}
		out := inner.String()
		width := utf8.RuneCountInString(out)
		if width > n.padWidth {
			return &PrintError{
				Code: diag.PrtPadOverflow,
				Msg:  fmt.Sprintf("cannot print as output of %d characters exceeds pad width of %d", width, n.padWidth),
			}
		}
		sb.WriteString(out)
		for range n.padWidth - width {
			sb.WriteRune(n.padChar)
		}
		return nil
	case kindComposite, kindOptional:
		for _, c := range n.children {
			if err := ps.print(sb, c); err != nil {
				return err
			}
		}
		return nil
	}
	panic(fmt.Sprintf("format: unknown node kind %d", n.kind))
}

func printNumber(sb *strings.Builder, n *node, v int64) error {
	var digits string
	if v == math.MinInt64 {
		digits = "9223372036854775808"
	} else if v < 0 {
		digits = strconv.FormatInt(-v, 10)
	} else {
		digits = strconv.FormatInt(v, 10)
	}
	if len(digits) > n.maxWidth {
		return &PrintError{
			Code:  diag.PrtWidthExceeded,
			Msg:   fmt.Sprintf("cannot print as value %d exceeds the maximum print width of %d", v, n.maxWidth),
			Field: n.field.ID(),
		}
	}
	if v >= 0 {
		switch n.sign {
		case SignExceedsPad:
			if n.minWidth < maxValueWidth && v >= exceedPoints[n.minWidth] {
				sb.WriteByte('+')
			}
		case SignAlways:
			sb.WriteByte('+')
		}
	} else {
		switch n.sign {
		case SignNormal, SignExceedsPad, SignAlways:
			sb.WriteByte('-')
		case SignNotNegative:
			return &PrintError{
				Code:  diag.PrtNegative,
				Msg:   fmt.Sprintf("cannot print as value %d cannot be negative according to the sign style", v),
				Field: n.field.ID(),
			}
		}
	}
	for range n.minWidth - len(digits) {
		sb.WriteByte('0')
	}
	sb.WriteString(digits)
	return nil
}

// fractionDigits returns floor((v-min) * 10^9 / span) as nine digits.
func fractionDigits(v int64, r field.Range) string {
	span := uint64(r.Max - r.Min + 1)
	hi, lo := bits.Mul64(uint64(v-r.Min), 1_000_000_000)
	q, _ := bits.Div64(hi, lo, span)
	s := strconv.FormatUint(q, 10)
	return strings.Repeat("0", 9-len(s)) + s
}

func printFraction(sb *strings.Builder, n *node, v int64) error {
	r := n.field.Range()
	if !r.Contains(v) {
		return &PrintError{
			Code:  diag.PrtFieldRange,
			Msg:   fmt.Sprintf("value %d is outside the valid range %s", v, r),
			Field: n.field.ID(),
		}
	}
	digits := strings.TrimRight(fractionDigits(v, r), "0")
	if digits == "" {
		for range n.minWidth {
			sb.WriteByte('0')
		}
		return nil
	}
	scale := min(max(len(digits), n.minWidth), n.maxWidth)
	if scale > len(digits) {
		digits += strings.Repeat("0", scale-len(digits))
	}
	sb.WriteString(digits[:scale])
	return nil
}

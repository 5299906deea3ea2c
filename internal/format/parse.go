package format

import (
	"fmt"
	"math"
	"math/bits"
	"unicode/utf8"

	"calfmt/internal/diag"
	"calfmt/internal/field"
	"calfmt/internal/trace"

	"golang.org/x/text/cases"
)

// parseState is the per-call cursor context. text may be narrowed to a pad
// window; full is always the caller's input.
type parseState struct {
	f             *Formatter
	full          string
	text          string
	caseSensitive bool
	strict        bool
	parsed        *Parsed
	span          uint64

	folder    cases.Caser
	hasFolder bool
}

func (f *Formatter) parse(text string, pos int, whole bool) (*Parsed, error) {
	span := trace.Begin(f.tracer, trace.ScopeCall, "parse", 0)
	ps := &parseState{
		f:             f,
		full:          text,
		text:          text,
		caseSensitive: f.caseSensitive,
		strict:        f.strict,
		parsed:        &Parsed{},
		span:          span.ID(),
	}
	if pos < 0 || pos > len(text) {
		err := ps.fail(diag.PrsPosition, pos, fmt.Sprintf("start position %d is outside the text", pos))
		err.Pos = 0
		span.End(err.Error())
		return nil, err
	}
	end, perr := ps.parseSeq(f.root.children, pos)
	if perr == nil && whole && end != len(text) {
		perr = ps.fail(diag.PrsTrailing, end, "unparsed text found")
	}
	if perr != nil {
		perr.Parsed = ps.parsed
		ps.parsed.Pos = perr.Pos
		span.End(perr.Error())
		return nil, perr
	}
	ps.parsed.Pos = end
	span.End(ps.parsed.String())
	return ps.parsed, nil
}

func (ps *parseState) fail(code diag.Code, pos int, msg string) *ParseError {
	return &ParseError{Code: code, Msg: msg, Text: ps.full, Pos: pos}
}

// parseSeq parses children in order. A numeric child learns how many
// digits the fixed-width numeric siblings right after it need.
func (ps *parseState) parseSeq(children []*node, pos int) (int, *ParseError) {
	var err *ParseError
	for i, c := range children {
		sub := 0
		if c.isNumeric() {
			for _, next := range children[i+1:] {
				w := next.numericWidth()
				if w == 0 {
					break
				}
				sub += w
			}
		}
		adjacent := sub > 0 || (i > 0 && children[i-1].isNumeric())
		pos, err = ps.parseNode(c, pos, sub, adjacent)
		if err != nil {
			return pos, err
		}
	}
	return pos, nil
}

func (ps *parseState) parseNode(n *node, pos, sub int, adjacent bool) (int, *ParseError) {
	switch n.kind {
	case kindLiteral:
		end, ok := ps.matchAt(pos, n.text)
		if !ok {
			return pos, ps.fail(diag.PrsMismatch, pos, fmt.Sprintf("expected %q", n.text))
		}
		return end, nil
	case kindValue, kindReduced:
		return ps.parseNumber(n, pos, sub, adjacent)
	case kindFraction:
		return ps.parseFraction(n, pos)
	case kindText:
		return ps.parseText(n, pos)
	case kindOffset:
		end, secs, err := ps.parseOffset(n, pos)
		if err != nil {
			return pos, err
		}
		if e := ps.parsed.setOffset(secs); e != nil {
			return pos, ps.fail(diag.PrsConflict, pos, e.Error())
		}
		return end, nil
	case kindZoneID:
		return ps.parseZoneID(pos)
	case kindZoneText:
		return ps.parseZoneText(n, pos)
	case kindCase:
		ps.caseSensitive = n.flag
		return pos, nil
	case kindStrict:
		ps.strict = n.flag
		return pos, nil
	case kindPad:
		return ps.parsePad(n, pos)
	case kindComposite:
		return ps.parseSeq(n.children, pos)
	case kindOptional:
		m := ps.parsed.mark()
		caseSensitive, strict := ps.caseSensitive, ps.strict
		end, err := ps.parseSeq(n.children, pos)
		if err != nil {
			ps.parsed.rollback(m)
			ps.caseSensitive, ps.strict = caseSensitive, strict
			trace.Point(ps.f.tracer, trace.ScopeNode, "optional", ps.span,
				fmt.Sprintf("rollback to %d: %s at %d", pos, err.Msg, err.Pos))
			return pos, nil
		}
		return end, nil
	}
	panic(fmt.Sprintf("format: unknown node kind %d", n.kind))
}

func (ps *parseState) setField(f field.Field, v int64, pos int) *ParseError {
	if err := ps.parsed.set(f, v); err != nil {
		return ps.fail(diag.PrsConflict, pos, err.Error())
	}
	return nil
}

// parseNumber reads a Value or ReducedValue. sub is the width reserved for
// the fixed-width numeric nodes that follow; when set, the digits are read
// twice: first only counted, then accumulated leaving sub digits behind.
func (ps *parseState) parseNumber(n *node, pos, sub int, adjacent bool) (int, *ParseError) {
	text := ps.text
	start := pos
	fixed := n.minWidth == n.maxWidth && !n.plain
	effMin, effMax := n.minWidth, n.maxWidth
	if !ps.strict && !(fixed && adjacent) {
		effMin, effMax = 1, maxValueWidth
	}
	effMax += sub

	if pos == len(text) {
		return pos, ps.fail(diag.PrsTooShort, pos, "expected digits")
	}
	var negative, positive bool
	switch text[pos] {
	case '+':
		if !n.sign.accepts(true, ps.strict, fixed) {
			return start, ps.fail(diag.PrsSign, pos, "'+' not permitted")
		}
		positive = true
		pos++
	case '-':
		if !n.sign.accepts(false, ps.strict, fixed) {
			return start, ps.fail(diag.PrsSign, pos, "'-' not permitted")
		}
		negative = true
		pos++
	default:
		if n.sign == SignAlways && ps.strict {
			return start, ps.fail(diag.PrsSign, pos, "sign required")
		}
	}

	digitsStart := pos
	minEnd := pos + effMin
	if minEnd > len(text) {
		return start, ps.fail(diag.PrsTooShort, start, fmt.Sprintf("expected at least %d digits", effMin))
	}
	var total int64
	for pass := 0; ; pass++ {
		maxEnd := min(pos+effMax, len(text))
		total = 0
		for pos < maxEnd {
			c := text[pos]
			if !isDigit(c) {
				if pos < minEnd {
					return start, ps.fail(diag.PrsTooShort, start, fmt.Sprintf("expected at least %d digits", effMin))
				}
				break
			}
			pos++
			if sub > 0 && pass == 0 {
				continue
			}
			d := int64(c - '0')
			if total > (math.MaxInt64-d)/10 {
				return start, ps.fail(diag.PrsOverflow, start, "numeric value overflows")
			}
			total = total*10 + d
		}
		if sub == 0 || pass > 0 {
			break
		}
		effMax = max(effMin, pos-digitsStart-sub)
		pos = digitsStart
	}

	parseLen := pos - digitsStart
	if negative {
		if total == 0 && ps.strict {
			return start, ps.fail(diag.PrsSign, start, "negative zero not permitted")
		}
		total = -total
	} else if n.sign == SignExceedsPad && ps.strict {
		if positive && parseLen <= n.minWidth {
			return start, ps.fail(diag.PrsSign, start, "'+' only permitted when the value exceeds the pad width")
		}
		if !positive && parseLen > n.minWidth {
			return start, ps.fail(diag.PrsSign, start, "'+' required when the value exceeds the pad width")
		}
	}
	if n.kind == kindReduced && parseLen == n.minWidth && total >= 0 {
		total = reduce(total, n.minWidth, n.base)
	}
	if err := ps.setField(n.field, total, start); err != nil {
		return start, err
	}
	return pos, nil
}

// reduce maps the low width digits d into [base, base+10^width).
func reduce(d int64, width int, base int64) int64 {
	rng := exceedPoints[width]
	basePart := base - base%rng
	var v int64
	if base > 0 {
		v = basePart + d
	} else {
		v = basePart - d
	}
	if v < base {
		v += rng
	}
	return v
}

func (ps *parseState) parseFraction(n *node, pos int) (int, *ParseError) {
	text := ps.text
	effMin, effMax := n.minWidth, n.maxWidth
	if !ps.strict {
		effMin, effMax = 0, maxFractionWidth
	}
	start := pos
	minEnd := pos + effMin
	if minEnd > len(text) {
		return start, ps.fail(diag.PrsTooShort, start, fmt.Sprintf("expected at least %d fraction digits", effMin))
	}
	maxEnd := min(pos+effMax, len(text))
	var total uint64
	for pos < maxEnd {
		c := text[pos]
		if !isDigit(c) {
			if pos < minEnd {
				return start, ps.fail(diag.PrsTooShort, start, fmt.Sprintf("expected at least %d fraction digits", effMin))
			}
			break
		}
		total = total*10 + uint64(c-'0')
		pos++
	}
	digits := pos - start
	if digits == 0 {
		return pos, nil
	}
	r := n.field.Range()
	span := uint64(r.Max - r.Min + 1)
	hi, lo := bits.Mul64(total, span)
	q, _ := bits.Div64(hi, lo, uint64(exceedPoints[digits]))
	if err := ps.setField(n.field, r.Min+int64(q), start); err != nil {
		return start, err
	}
	return pos, nil
}

func (ps *parseState) styles(style field.TextStyle) []field.TextStyle {
	if ps.strict {
		return []field.TextStyle{style}
	}
	return field.Styles
}

func (ps *parseState) parseText(n *node, pos int) (int, *ParseError) {
	if p := ps.f.text; p != nil {
		bestEnd, bestLen, ambiguous, known := pos, 0, false, false
		var bestVal int64
		for _, style := range ps.styles(n.style) {
			for _, e := range p.Texts(n.field, style) {
				if e.Text == "" {
					continue
				}
				known = true
				end, ok := ps.matchAt(pos, e.Text)
				if !ok {
					continue
				}
				switch l := end - pos; {
				case l > bestLen:
					bestEnd, bestLen, bestVal, ambiguous = end, l, e.Value, false
				case l == bestLen && e.Value != bestVal:
					ambiguous = true
				}
			}
		}
		if ambiguous {
			return pos, ps.fail(diag.PrsAmbiguous, pos, fmt.Sprintf("text for %s is ambiguous", n.field.ID()))
		}
		if bestLen > 0 {
			if err := ps.setField(n.field, bestVal, pos); err != nil {
				return pos, err
			}
			return bestEnd, nil
		}
		if known {
			return pos, ps.fail(diag.PrsNoMatch, pos, fmt.Sprintf("no text for %s matches", n.field.ID()))
		}
	}
	// Numeric parsing only applies to fields the provider has no names for.
	num := &node{kind: kindValue, field: n.field, minWidth: 1, maxWidth: maxValueWidth, sign: SignNormal, plain: true}
	end, err := ps.parseNumber(num, pos, 0, false)
	if err != nil && err.Code == diag.PrsConflict {
		return pos, err
	}
	if err != nil {
		return pos, ps.fail(diag.PrsNoMatch, pos, fmt.Sprintf("no text for %s matches", n.field.ID()))
	}
	return end, nil
}

func isZoneByte(b byte, first bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case first:
		return false
	case isDigit(b):
		return true
	}
	switch b {
	case '/', '_', '+', '-', '~', '.':
		return true
	}
	return false
}

func (ps *parseState) parseZoneID(pos int) (int, *ParseError) {
	text := ps.text
	end := pos
	for end < len(text) && isZoneByte(text[end], end == pos) {
		end++
	}
	if end == pos {
		return pos, ps.fail(diag.PrsMismatch, pos, "expected zone id")
	}
	if zones := ps.f.zones; zones != nil {
		for e := end; e > pos; e-- {
			if id := text[pos:e]; zones.IsZone(id) {
				return ps.storeZone(id, pos, e)
			}
		}
		return pos, ps.fail(diag.PrsNoMatch, pos, fmt.Sprintf("unknown zone id %q", text[pos:end]))
	}
	return ps.storeZone(text[pos:end], pos, end)
}

func (ps *parseState) storeZone(id string, pos, end int) (int, *ParseError) {
	if err := ps.parsed.setZone(id); err != nil {
		return pos, ps.fail(diag.PrsConflict, pos, err.Error())
	}
	return end, nil
}

func (ps *parseState) parseZoneText(n *node, pos int) (int, *ParseError) {
	zones := ps.f.zones
	if zones == nil {
		return ps.parseZoneID(pos)
	}
	bestEnd, bestLen := pos, 0
	var bestID string
	for _, style := range ps.styles(n.style) {
		for _, name := range zones.Names(style) {
			end, ok := ps.matchAt(pos, name)
			if !ok || end-pos <= bestLen {
				continue
			}
			if id, ok := zones.ZoneByName(name, style); ok {
				bestEnd, bestLen, bestID = end, end-pos, id
			}
		}
	}
	if bestLen == 0 {
		return ps.parseZoneID(pos)
	}
	return ps.storeZone(bestID, pos, bestEnd)
}

// parsePad parses the child inside a window of exactly padWidth runes; the
// rest of the window must be pad characters unless the child is optional.
func (ps *parseState) parsePad(n *node, pos int) (int, *ParseError) {
	full := ps.text
	end, count := pos, 0
	for count < n.padWidth && end < len(full) {
		_, size := utf8.DecodeRuneInString(full[end:])
		end += size
		count++
	}
	if count < n.padWidth && ps.strict {
		return pos, ps.fail(diag.PrsTooShort, pos, fmt.Sprintf("expected %d characters for pad", n.padWidth))
	}

	child := n.children[0]
	ps.text = full[:end]
	got, err := ps.parseNode(child, pos, 0, false)
	ps.text = full
	if err != nil {
		trace.Point(ps.f.tracer, trace.ScopeNode, "pad", ps.span, fmt.Sprintf("window %d-%d: %s", pos, end, err.Msg))
		return pos, err
	}
	if child.kind != kindOptional {
		for i := got; i < end; {
			r, size := utf8.DecodeRuneInString(full[i:])
			if r != n.padChar {
				return pos, ps.fail(diag.PrsMismatch, i, fmt.Sprintf("expected pad character %q", n.padChar))
			}
			i += size
		}
	}
	return end, nil
}

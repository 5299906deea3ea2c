package format

import (
	"strings"

	"calfmt/internal/diag"
)

// offsetPatterns are the accepted offset layouts; the index is the pattern
// type. Even types use ':' separators, types 3 and 4 print seconds only when
// non-zero, types 5 and 6 always print them.
var offsetPatterns = [...]string{
	"+HH", "+HHMM", "+HH:MM", "+HHMMss", "+HH:MM:ss", "+HHMMSS", "+HH:MM:SS",
}

type offsetPattern uint8

func lookupOffsetPattern(s string) (offsetPattern, bool) {
	for i, p := range offsetPatterns {
		if p == s {
			return offsetPattern(i), true
		}
	}
	return 0, false
}

func (p offsetPattern) String() string { return offsetPatterns[p] }

func (p offsetPattern) colon() bool { return p%2 == 0 }

// fields returns how many numeric groups the pattern can hold: 1 hours,
// 2 minutes, 3 seconds.
func (p offsetPattern) fields() int { return (int(p) + 3) / 2 }

func appendTwoDigits(sb *strings.Builder, v int) {
	sb.WriteByte(byte('0' + v/10))
	sb.WriteByte(byte('0' + v%10))
}

func printOffset(sb *strings.Builder, n *node, totalSecs int) {
	if totalSecs == 0 {
		sb.WriteString(n.text)
		return
	}
	absHours := abs((totalSecs / 3600) % 100)
	absMinutes := abs((totalSecs / 60) % 60)
	absSeconds := abs(totalSecs % 60)
	if totalSecs < 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteByte('+')
	}
	appendTwoDigits(sb, absHours)
	p := n.offset
	if p >= 1 {
		if p.colon() {
			sb.WriteByte(':')
		}
		appendTwoDigits(sb, absMinutes)
		if p >= 5 || (p >= 3 && absSeconds > 0) {
			if p.colon() {
				sb.WriteByte(':')
			}
			appendTwoDigits(sb, absSeconds)
		}
	}
}

// parseOffset returns the end position and the parsed offset in seconds.
func (ps *parseState) parseOffset(n *node, pos int) (int, int, *ParseError) {
	text := ps.text
	if n.text == "" {
		if pos == len(text) {
			return pos, 0, nil
		}
	} else {
		if pos == len(text) {
			return pos, 0, ps.fail(diag.PrsMismatch, pos, "expected offset")
		}
		if end, ok := ps.matchAt(pos, n.text); ok {
			return end, 0, nil
		}
	}

	if sign := text[pos]; sign == '+' || sign == '-' {
		neg := sign == '-'
		var groups [4]int // [0] is the cursor
		groups[0] = pos + 1
		if !parseOffsetGroup(&groups, 1, text, n.offset, true) &&
			!parseOffsetGroup(&groups, 2, text, n.offset, n.offset >= 3) &&
			!parseOffsetGroup(&groups, 3, text, n.offset, false) {
			secs := groups[1]*3600 + groups[2]*60 + groups[3]
			if neg {
				secs = -secs
			}
			return groups[0], secs, nil
		}
	}
	if n.text == "" {
		return pos, 0, nil
	}
	return pos, 0, ps.fail(diag.PrsMismatch, pos, "invalid offset")
}

// parseOffsetGroup reads group idx into groups and reports failure only
// when the group is required.
func parseOffsetGroup(groups *[4]int, idx int, text string, p offsetPattern, required bool) (failed bool) {
	if p.fields() < idx {
		return false
	}
	pos := groups[0]
	if p.colon() && idx > 1 {
		if pos+1 > len(text) || text[pos] != ':' {
			return required
		}
		pos++
	}
	if pos+2 > len(text) {
		return required
	}
	c1, c2 := text[pos], text[pos+1]
	if !isDigit(c1) || !isDigit(c2) {
		return required
	}
	v := int(c1-'0')*10 + int(c2-'0')
	if idx > 1 && v > 59 {
		return required
	}
	groups[idx] = v
	groups[0] = pos + 2
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a byte range inside a pattern or a parse input.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// At returns the empty span positioned at off.
func At(off int) Span {
	pos := offset(off)
	return Span{Start: pos, End: pos}
}

// Range returns the span covering [start, end).
func Range(start, end int) Span {
	return Span{Start: offset(start), End: offset(end)}
}

func offset(off int) uint32 {
	if off < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("span offset overflow: %w", err))
	}
	return v
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

// StartInt and EndInt return the bounds as ints for slicing.
func (s Span) StartInt() int { return int(s.Start) }
func (s Span) EndInt() int   { return int(s.End) }

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Slice returns the part of text covered by the span, clamped to text.
func (s Span) Slice(text string) string {
	start, end := int(s.Start), int(s.End)
	if start > len(text) {
		start = len(text)
	}
	if end > len(text) {
		end = len(text)
	}
	if end < start {
		end = start
	}
	return text[start:end]
}

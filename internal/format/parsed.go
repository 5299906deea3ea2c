package format

import (
	"fmt"
	"strconv"
	"strings"

	"calfmt/internal/field"
)

type parsedEntry struct {
	field field.Field
	value int64
}

// Parsed is the result of one parse: field values in the order they were
// set, the offset and zone when present, and the end position.
type Parsed struct {
	entries   []parsedEntry
	offset    int
	hasOffset bool
	zone      string
	// Pos is the byte offset where parsing stopped.
	Pos int
}

// Get returns the value parsed for f.
func (p *Parsed) Get(f field.Field) (int64, bool) {
	for _, e := range p.entries {
		if field.Same(e.field, f) {
			return e.value, true
		}
	}
	return 0, false
}

// ValueOf looks a field up by its qualified id.
func (p *Parsed) ValueOf(id string) (int64, bool) {
	for _, e := range p.entries {
		if e.field.ID() == id {
			return e.value, true
		}
	}
	return 0, false
}

// Fields lists the parsed fields in the order they were set.
func (p *Parsed) Fields() []field.Field {
	out := make([]field.Field, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.field
	}
	return out
}

// Len returns the number of parsed fields.
func (p *Parsed) Len() int { return len(p.entries) }

// Values returns field ids mapped to values.
func (p *Parsed) Values() map[string]int64 {
	out := make(map[string]int64, len(p.entries))
	for _, e := range p.entries {
		out[e.field.ID()] = e.value
	}
	return out
}

// OffsetSeconds returns the parsed offset.
func (p *Parsed) OffsetSeconds() (int, bool) { return p.offset, p.hasOffset }

// ZoneID returns the parsed zone id.
func (p *Parsed) ZoneID() (string, bool) { return p.zone, p.zone != "" }

// ZoneName returns the zone id; a Parsed keeps no display names.
func (p *Parsed) ZoneName(field.TextStyle) (string, bool) { return p.ZoneID() }

func (p *Parsed) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, e := range p.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.field.ID())
		sb.WriteString("=")
		sb.WriteString(strconv.FormatInt(e.value, 10))
	}
	sb.WriteString("}")
	if p.hasOffset {
		fmt.Fprintf(&sb, " offset=%d", p.offset)
	}
	if p.zone != "" {
		fmt.Fprintf(&sb, " zone=%s", p.zone)
	}
	return sb.String()
}

// set records a field value; a different value for a field already set
// is a conflict.
func (p *Parsed) set(f field.Field, v int64) error {
	for _, e := range p.entries {
		if field.Same(e.field, f) {
			if e.value != v {
				return fmt.Errorf("conflict found: %s %d differs from %d", f.ID(), e.value, v)
			}
			return nil
		}
	}
	p.entries = append(p.entries, parsedEntry{field: f, value: v})
	return nil
}

func (p *Parsed) setOffset(secs int) error {
	if p.hasOffset && p.offset != secs {
		return fmt.Errorf("conflict found: offset %d differs from %d", p.offset, secs)
	}
	p.offset, p.hasOffset = secs, true
	return nil
}

func (p *Parsed) setZone(id string) error {
	if p.zone != "" && p.zone != id {
		return fmt.Errorf("conflict found: zone %s differs from %s", p.zone, id)
	}
	p.zone = id
	return nil
}

// parsedMark captures enough state to undo a failed optional section.
type parsedMark struct {
	entries   int
	offset    int
	hasOffset bool
	zone      string
}

func (p *Parsed) mark() parsedMark {
	return parsedMark{entries: len(p.entries), offset: p.offset, hasOffset: p.hasOffset, zone: p.zone}
}

func (p *Parsed) rollback(m parsedMark) {
	clear(p.entries[m.entries:])
	p.entries = p.entries[:m.entries]
	p.offset, p.hasOffset, p.zone = m.offset, m.hasOffset, m.zone
}

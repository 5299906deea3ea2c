package iso

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"calfmt/internal/field"
)

// DateTime is a time.Time that also supplies its offset and zone to the
// formatter.
type DateTime struct {
	time.Time
}

// At wraps t.
func At(t time.Time) DateTime { return DateTime{Time: t} }

// OffsetSeconds returns the offset of t from UTC.
func (d DateTime) OffsetSeconds() (int, bool) {
	_, off := d.Zone()
	return off, true
}

// ZoneID returns the location name; Local has no portable id.
func (d DateTime) ZoneID() (string, bool) {
	name := d.Location().String()
	if name == "" || name == "Local" {
		return "", false
	}
	return name, true
}

// ZoneName returns the abbreviation for SHORT and NARROW and the id for FULL.
func (d DateTime) ZoneName(style field.TextStyle) (string, bool) {
	if style == field.Full {
		return d.ZoneID()
	}
	abbr, _ := d.Zone()
	return abbr, abbr != ""
}

// Fields is a plain field-id to value map usable as a calendrical.
type Fields map[string]int64

// Get implements field.Getter.
func (m Fields) Get(f field.Field) (int64, bool) {
	v, ok := m[f.ID()]
	return v, ok
}

func (m Fields) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(strconv.FormatInt(m[k], 10))
	}
	sb.WriteString("}")
	return sb.String()
}

package iso

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"calfmt/internal/field"
)

// abbreviations maps common zone abbreviations to a representative zone.
var abbreviations = map[string]string{
	"UTC":  "UTC",
	"GMT":  "Etc/GMT",
	"WET":  "Europe/Lisbon",
	"BST":  "Europe/London",
	"CET":  "Europe/Paris",
	"CEST": "Europe/Paris",
	"EET":  "Europe/Athens",
	"EEST": "Europe/Athens",
	"MSK":  "Europe/Moscow",
	"IST":  "Asia/Kolkata",
	"JST":  "Asia/Tokyo",
	"KST":  "Asia/Seoul",
	"AEST": "Australia/Sydney",
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"CST":  "America/Chicago",
	"CDT":  "America/Chicago",
	"MST":  "America/Denver",
	"MDT":  "America/Denver",
	"PST":  "America/Los_Angeles",
	"PDT":  "America/Los_Angeles",
}

// Zones is a field.ZoneProvider over the system zone database. It is safe
// for concurrent use.
type Zones struct {
	mu    sync.Mutex
	cache map[string]*time.Location
	miss  map[string]struct{}
}

// NewZones returns an empty provider; locations load on first use.
func NewZones() *Zones {
	return &Zones{
		cache: make(map[string]*time.Location),
		miss:  make(map[string]struct{}),
	}
}

// Load returns the location for a zone id.
func (z *Zones) Load(id string) (*time.Location, error) {
	if id == "" || id == "Local" {
		return nil, fmt.Errorf("zone %q is not a portable zone id", id)
	}
	z.mu.Lock()
	defer z.mu.Unlock()
	if loc, ok := z.cache[id]; ok {
		return loc, nil
	}
	if _, ok := z.miss[id]; ok {
		return nil, fmt.Errorf("unknown zone %q", id)
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		z.miss[id] = struct{}{}
		return nil, fmt.Errorf("unknown zone %q: %w", id, err)
	}
	z.cache[id] = loc
	return loc, nil
}

// IsZone implements field.ZoneProvider.
func (z *Zones) IsZone(id string) bool {
	_, err := z.Load(id)
	return err == nil
}

// ZoneByName implements field.ZoneProvider. SHORT and NARROW names are
// abbreviations; FULL names are zone ids.
func (z *Zones) ZoneByName(name string, style field.TextStyle) (string, bool) {
	if style == field.Full {
		return name, z.IsZone(name)
	}
	id, ok := abbreviations[name]
	return id, ok
}

// Names implements field.ZoneProvider.
func (z *Zones) Names(style field.TextStyle) []string {
	seen := make(map[string]struct{}, len(abbreviations))
	out := make([]string, 0, len(abbreviations))
	for abbr, id := range abbreviations {
		name := abbr
		if style == field.Full {
			name = id
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

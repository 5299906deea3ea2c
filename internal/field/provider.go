package field

// TextEntry pairs a text with the value it names.
type TextEntry struct {
	Text  string
	Value int64
}

// TextProvider supplies human readable names for textual fields.
type TextProvider interface {
	// Text returns the text for value, false when none exists.
	Text(f Field, value int64, style TextStyle) (string, bool)
	// Texts lists every text for a field in one style; nil when the field
	// has no texts at all.
	Texts(f Field, style TextStyle) []TextEntry
}

// ZoneProvider validates zone ids and maps zone names back to ids.
type ZoneProvider interface {
	IsZone(id string) bool
	// ZoneByName resolves a display name in the given style to a zone id.
	ZoneByName(name string, style TextStyle) (string, bool)
	// Names lists the names a parser may encounter in one style.
	Names(style TextStyle) []string
}

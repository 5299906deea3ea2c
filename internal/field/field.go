package field

// Calendrical is any value a Field can read itself from.
type Calendrical any

// Field is one range-bounded unit of calendar information.
type Field interface {
	// ID is the qualified name used in canonical renderings, e.g. "ISO.DayOfMonth".
	ID() string
	// Name is the short name, e.g. "DayOfMonth".
	Name() string
	// Range is the valid value range.
	Range() Range
	// ValueFrom extracts the field value; false when cal cannot supply it.
	ValueFrom(cal Calendrical) (int64, bool)
}

// Getter is a calendrical that answers field lookups directly.
type Getter interface {
	Get(f Field) (int64, bool)
}

// OffsetSource supplies a zone offset in seconds east of UTC.
type OffsetSource interface {
	OffsetSeconds() (int, bool)
}

// ZoneSource supplies a zone id and a display name.
type ZoneSource interface {
	ZoneID() (string, bool)
	ZoneName(style TextStyle) (string, bool)
}

// Same reports whether a and b denote the same field.
func Same(a, b Field) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID()
}

package iso

import (
	"calfmt/internal/field"

	"golang.org/x/text/language"
)

// textTable holds the names of one field; names[style][i] names value first+i.
type textTable struct {
	first int64
	names [3][]string
}

type locale struct {
	tag    language.Tag
	tables map[*Rule]*textTable
}

var english = &locale{
	tag: language.English,
	tables: map[*Rule]*textTable{
		MonthOfYear: {first: 1, names: [3][]string{
			field.Full: {"January", "February", "March", "April", "May", "June",
				"July", "August", "September", "October", "November", "December"},
			field.Short:  {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
			field.Narrow: {"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"},
		}},
		DayOfWeek: {first: 1, names: [3][]string{
			field.Full:   {"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			field.Short:  {"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			field.Narrow: {"M", "T", "W", "T", "F", "S", "S"},
		}},
		AmPmOfDay: {first: 0, names: [3][]string{
			field.Full:   {"AM", "PM"},
			field.Short:  {"AM", "PM"},
			field.Narrow: {"a", "p"},
		}},
		QuarterOfYear: {first: 1, names: [3][]string{
			field.Full:   {"1st quarter", "2nd quarter", "3rd quarter", "4th quarter"},
			field.Short:  {"Q1", "Q2", "Q3", "Q4"},
			field.Narrow: {"1", "2", "3", "4"},
		}},
	},
}

var french = &locale{
	tag: language.French,
	tables: map[*Rule]*textTable{
		MonthOfYear: {first: 1, names: [3][]string{
			field.Full: {"janvier", "février", "mars", "avril", "mai", "juin",
				"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
			field.Short: {"janv.", "févr.", "mars", "avr.", "mai", "juin",
				"juil.", "août", "sept.", "oct.", "nov.", "déc."},
			field.Narrow: {"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"},
		}},
		DayOfWeek: {first: 1, names: [3][]string{
			field.Full:   {"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"},
			field.Short:  {"lun.", "mar.", "mer.", "jeu.", "ven.", "sam.", "dim."},
			field.Narrow: {"L", "M", "M", "J", "V", "S", "D"},
		}},
		AmPmOfDay: {first: 0, names: [3][]string{
			field.Full:   {"AM", "PM"},
			field.Short:  {"AM", "PM"},
			field.Narrow: {"AM", "PM"},
		}},
		QuarterOfYear: {first: 1, names: [3][]string{
			field.Full:   {"1er trimestre", "2e trimestre", "3e trimestre", "4e trimestre"},
			field.Short:  {"T1", "T2", "T3", "T4"},
			field.Narrow: {"1", "2", "3", "4"},
		}},
	},
}

var (
	locales = []*locale{english, french}
	matcher = language.NewMatcher([]language.Tag{language.English, language.French})
)

// Text is a field.TextProvider backed by a built-in catalog.
type Text struct {
	loc *locale
}

// NewText picks the closest catalog for a BCP 47 locale; unknown or empty
// locales fall back to English.
func NewText(locale string) *Text {
	if locale == "" {
		return &Text{loc: english}
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return &Text{loc: english}
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return &Text{loc: english}
	}
	return &Text{loc: locales[idx]}
}

// Tag reports the catalog language.
func (t *Text) Tag() language.Tag { return t.loc.tag }

func (t *Text) table(f field.Field) *textTable {
	r, ok := f.(*Rule)
	if !ok {
		return nil
	}
	return t.loc.tables[r]
}

// Text implements field.TextProvider.
func (t *Text) Text(f field.Field, value int64, style field.TextStyle) (string, bool) {
	tbl := t.table(f)
	if tbl == nil || !style.Valid() {
		return "", false
	}
	names := tbl.names[style]
	i := value - tbl.first
	if i < 0 || i >= int64(len(names)) {
		return "", false
	}
	return names[i], true
}

// Texts implements field.TextProvider.
func (t *Text) Texts(f field.Field, style field.TextStyle) []field.TextEntry {
	tbl := t.table(f)
	if tbl == nil || !style.Valid() {
		return nil
	}
	names := tbl.names[style]
	out := make([]field.TextEntry, len(names))
	for i, n := range names {
		out[i] = field.TextEntry{Text: n, Value: tbl.first + int64(i)}
	}
	return out
}

package iso

import (
	"time"

	"calfmt/internal/field"
)

// Rule is one ISO field. Rules are package singletons compared by identity.
type Rule struct {
	name   string
	letter byte
	rng    field.Range
	get    func(t time.Time) int64
}

func (r *Rule) ID() string         { return "ISO." + r.name }
func (r *Rule) Name() string       { return r.name }
func (r *Rule) Range() field.Range { return r.rng }
func (r *Rule) String() string     { return r.ID() }

// Letter is the pattern letter bound to the rule, 0 when none.
func (r *Rule) Letter() byte { return r.letter }

// ValueFrom reads the rule from time.Time, DateTime, or any field.Getter.
func (r *Rule) ValueFrom(cal field.Calendrical) (int64, bool) {
	switch c := cal.(type) {
	case time.Time:
		return r.get(c), true
	case *time.Time:
		if c == nil {
			return 0, false
		}
		return r.get(*c), true
	case DateTime:
		return r.get(c.Time), true
	case *DateTime:
		if c == nil {
			return 0, false
		}
		return r.get(c.Time), true
	case field.Getter:
		return c.Get(r)
	}
	return 0, false
}

// Of reads the rule from t.
func (r *Rule) Of(t time.Time) int64 { return r.get(t) }

func hour(t time.Time) int64 { return int64(t.Hour()) }

func secondOfDay(t time.Time) int64 {
	return int64(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

var (
	Year = &Rule{"Year", 'y', field.Fixed(-999_999_999, 999_999_999),
		func(t time.Time) int64 { return int64(t.Year()) }}
	WeekBasedYear = &Rule{"WeekBasedYear", 'Y', field.Fixed(-999_999_999, 999_999_999),
		func(t time.Time) int64 { y, _ := t.ISOWeek(); return int64(y) }}
	QuarterOfYear = &Rule{"QuarterOfYear", 'Q', field.Fixed(1, 4),
		func(t time.Time) int64 { return int64(t.Month()-1)/3 + 1 }}
	MonthOfYear = &Rule{"MonthOfYear", 'M', field.Fixed(1, 12),
		func(t time.Time) int64 { return int64(t.Month()) }}
	MonthOfQuarter = &Rule{"MonthOfQuarter", 'q', field.Fixed(1, 3),
		func(t time.Time) int64 { return int64(t.Month()-1)%3 + 1 }}
	WeekOfWeekBasedYear = &Rule{"WeekOfWeekBasedYear", 'w', field.Variable(1, 52, 53),
		func(t time.Time) int64 { _, w := t.ISOWeek(); return int64(w) }}
	DayOfYear = &Rule{"DayOfYear", 'D', field.Variable(1, 365, 366),
		func(t time.Time) int64 { return int64(t.YearDay()) }}
	DayOfMonth = &Rule{"DayOfMonth", 'd', field.Variable(1, 28, 31),
		func(t time.Time) int64 { return int64(t.Day()) }}
	WeekOfMonth = &Rule{"WeekOfMonth", 'F', field.Variable(1, 4, 5),
		func(t time.Time) int64 { return int64(t.Day()-1)/7 + 1 }}
	DayOfWeek = &Rule{"DayOfWeek", 'E', field.Fixed(1, 7),
		func(t time.Time) int64 { return int64(t.Weekday()+6)%7 + 1 }}
	AmPmOfDay = &Rule{"AmPmOfDay", 'a', field.Fixed(0, 1),
		func(t time.Time) int64 { return hour(t) / 12 }}
	HourOfDay  = &Rule{"HourOfDay", 'H', field.Fixed(0, 23), hour}
	HourOfAmPm = &Rule{"HourOfAmPm", 'K', field.Fixed(0, 11),
		func(t time.Time) int64 { return hour(t) % 12 }}
	ClockHourOfDay = &Rule{"ClockHourOfDay", 'k', field.Fixed(1, 24),
		func(t time.Time) int64 {
			if h := hour(t); h != 0 {
				return h
			}
			return 24
		}}
	ClockHourOfAmPm = &Rule{"ClockHourOfAmPm", 'h', field.Fixed(1, 12),
		func(t time.Time) int64 {
			if h := hour(t) % 12; h != 0 {
				return h
			}
			return 12
		}}
	MinuteOfHour = &Rule{"MinuteOfHour", 'm', field.Fixed(0, 59),
		func(t time.Time) int64 { return int64(t.Minute()) }}
	SecondOfMinute = &Rule{"SecondOfMinute", 's', field.Fixed(0, 59),
		func(t time.Time) int64 { return int64(t.Second()) }}
	MilliOfSecond = &Rule{"MilliOfSecond", 'S', field.Fixed(0, 999),
		func(t time.Time) int64 { return int64(t.Nanosecond() / 1_000_000) }}
	MilliOfDay = &Rule{"MilliOfDay", 'A', field.Fixed(0, 86_399_999),
		func(t time.Time) int64 { return secondOfDay(t)*1000 + int64(t.Nanosecond()/1_000_000) }}
	NanoOfSecond = &Rule{"NanoOfSecond", 'n', field.Fixed(0, 999_999_999),
		func(t time.Time) int64 { return int64(t.Nanosecond()) }}
	NanoOfDay = &Rule{"NanoOfDay", 'N', field.Fixed(0, 86_399_999_999_999),
		func(t time.Time) int64 { return secondOfDay(t)*1_000_000_000 + int64(t.Nanosecond()) }}
)

var all = []*Rule{
	Year, WeekBasedYear, QuarterOfYear, MonthOfYear, MonthOfQuarter,
	WeekOfWeekBasedYear, DayOfYear, DayOfMonth, WeekOfMonth, DayOfWeek,
	AmPmOfDay, HourOfDay, HourOfAmPm, ClockHourOfDay, ClockHourOfAmPm,
	MinuteOfHour, SecondOfMinute, MilliOfSecond, MilliOfDay, NanoOfSecond, NanoOfDay,
}

// All lists every rule, date fields first.
func All() []*Rule { return append([]*Rule(nil), all...) }

// ByLetter returns the rule bound to a pattern letter.
func ByLetter(letter byte) (*Rule, bool) {
	for _, r := range all {
		if r.letter == letter {
			return r, true
		}
	}
	return nil, false
}

// ByID returns the rule with the given qualified or short name.
func ByID(id string) (*Rule, bool) {
	for _, r := range all {
		if r.ID() == id || r.name == id {
			return r, true
		}
	}
	return nil, false
}

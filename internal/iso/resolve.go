package iso

import (
	"errors"
	"fmt"
	"time"

	"calfmt/internal/field"
)

var (
	// ErrIncomplete is returned when the fields do not determine a date.
	ErrIncomplete = errors.New("insufficient fields to resolve a date")
	// ErrInconsistent is returned when redundant fields disagree.
	ErrInconsistent = errors.New("inconsistent fields")
)

// Resolve merges parsed fields into a time.Time. The zone comes from a
// parsed zone id, then a parsed offset, then loc (UTC when nil).
func Resolve(src field.Getter, loc *time.Location) (time.Time, error) {
	get := func(r *Rule) (int64, bool) { return src.Get(r) }

	where, err := resolveLocation(src, loc)
	if err != nil {
		return time.Time{}, err
	}

	year, month, day, err := resolveDate(get)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, sec, nano, err := resolveTime(get)
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(int(year), time.Month(month), int(day), int(hour), int(minute), int(sec), int(nano), where)
	if t.Year() != int(year) || int64(t.Month()) != month || int64(t.Day()) != day {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d is not a valid date", ErrInconsistent, year, month, day)
	}
	for _, r := range all {
		if v, ok := get(r); ok && r.get(t) != v {
			return time.Time{}, fmt.Errorf("%w: %s is %d but the resolved value has %d", ErrInconsistent, r.ID(), v, r.get(t))
		}
	}
	if off, ok := offsetOf(src); ok {
		if _, actual := t.Zone(); actual != off {
			return time.Time{}, fmt.Errorf("%w: offset %d does not match zone offset %d", ErrInconsistent, off, actual)
		}
	}
	return t, nil
}

func offsetOf(src field.Getter) (int, bool) {
	if o, ok := src.(field.OffsetSource); ok {
		return o.OffsetSeconds()
	}
	return 0, false
}

func resolveLocation(src field.Getter, loc *time.Location) (*time.Location, error) {
	if z, ok := src.(field.ZoneSource); ok {
		if id, ok := z.ZoneID(); ok {
			l, err := defaultZones.Load(id)
			if err != nil {
				return nil, err
			}
			return l, nil
		}
	}
	if off, ok := offsetOf(src); ok {
		if off == 0 {
			return time.UTC, nil
		}
		return time.FixedZone("", off), nil
	}
	if loc == nil {
		return time.UTC, nil
	}
	return loc, nil
}

var defaultZones = NewZones()

func resolveDate(get func(*Rule) (int64, bool)) (year, month, day int64, err error) {
	if y, ok := get(Year); ok {
		if m, ok := get(MonthOfYear); ok {
			if d, ok := get(DayOfMonth); ok {
				return y, m, d, nil
			}
		}
		if doy, ok := get(DayOfYear); ok {
			t := time.Date(int(y), time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(doy)-1)
			if int64(t.Year()) != y {
				return 0, 0, 0, fmt.Errorf("%w: day-of-year %d outside year %d", ErrInconsistent, doy, y)
			}
			return y, int64(t.Month()), int64(t.Day()), nil
		}
	}
	wby, okY := get(WeekBasedYear)
	week, okW := get(WeekOfWeekBasedYear)
	dow, okD := get(DayOfWeek)
	if okY && okW && okD {
		jan4 := time.Date(int(wby), time.January, 4, 0, 0, 0, 0, time.UTC)
		monday := jan4.AddDate(0, 0, -int(DayOfWeek.get(jan4)-1))
		t := monday.AddDate(0, 0, int((week-1)*7+(dow-1)))
		return int64(t.Year()), int64(t.Month()), int64(t.Day()), nil
	}
	return 0, 0, 0, ErrIncomplete
}

func resolveTime(get func(*Rule) (int64, bool)) (hour, minute, sec, nano int64, err error) {
	if nod, ok := get(NanoOfDay); ok {
		return nod / 3_600_000_000_000, nod / 60_000_000_000 % 60, nod / 1_000_000_000 % 60, nod % 1_000_000_000, nil
	}
	if mod, ok := get(MilliOfDay); ok {
		hour, minute, sec, nano = mod/3_600_000, mod/60_000%60, mod/1000%60, mod%1000*1_000_000
	} else {
		switch {
		case has(get, HourOfDay):
			hour, _ = get(HourOfDay)
		case has(get, ClockHourOfDay):
			hour, _ = get(ClockHourOfDay)
			hour %= 24
		case has(get, AmPmOfDay):
			ap, _ := get(AmPmOfDay)
			if h, ok := get(HourOfAmPm); ok {
				hour = ap*12 + h
			} else if h, ok := get(ClockHourOfAmPm); ok {
				hour = ap*12 + h%12
			} else {
				return 0, 0, 0, 0, fmt.Errorf("%w: AM/PM without an hour", ErrIncomplete)
			}
		}
		minute, _ = get(MinuteOfHour)
		sec, _ = get(SecondOfMinute)
	}
	if n, ok := get(NanoOfSecond); ok {
		nano = n
	} else if ms, ok := get(MilliOfSecond); ok {
		nano = ms * 1_000_000
	}
	return hour, minute, sec, nano, nil
}

func has(get func(*Rule) (int64, bool), r *Rule) bool {
	_, ok := get(r)
	return ok
}

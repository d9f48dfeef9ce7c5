// Package dates holds the calendar-day arithmetic shared by the agenda
// views. Every helper works in the location carried by its argument, so a
// "day" is always the wall-clock day of that location.
package dates

import "time"

// AddDays moves t by n calendar days, keeping the wall-clock time. Across a
// DST change the result is still the same clock time on the target day.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ShiftDays moves t by n calendar days, keeping the time elapsed since the
// start of t's day rather than the clock reading. When a DST change removes
// t's clock time from the target day the result still maps back: shifting
// by n and then by -n returns t whenever that elapsed time fits in the
// target day, which always holds for day starts.
func ShiftDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
	return target.Add(t.Sub(StartOfDay(t)))
}

// StartOfDay returns midnight at the start of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns midnight at the start of the following day. Ranges built
// with it are half-open: [StartOfDay(t), EndOfDay(t)).
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// CompareDay compares a and b at day granularity and returns -1, 0 or +1.
// Time-of-day is ignored; b is read in a's location.
func CompareDay(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	switch {
	case ay != by:
		return sign(ay - by)
	case am != bm:
		return sign(int(am) - int(bm))
	default:
		return sign(ad - bd)
	}
}

func EqDay(a, b time.Time) bool  { return CompareDay(a, b) == 0 }
func LtDay(a, b time.Time) bool  { return CompareDay(a, b) < 0 }
func GtDay(a, b time.Time) bool  { return CompareDay(a, b) > 0 }
func LteDay(a, b time.Time) bool { return CompareDay(a, b) <= 0 }
func GteDay(a, b time.Time) bool { return CompareDay(a, b) >= 0 }

// Range lists start, start+1d, start+2d, ... for every value strictly
// before end. It returns nil when end is not after start.
func Range(start, end time.Time) []time.Time {
	if !end.After(start) {
		return nil
	}
	var out []time.Time
	for d := start; d.Before(end); d = AddDays(d, 1) {
		out = append(out, d)
	}
	return out
}

// DaysBetween counts calendar days from a's day to b's day.
func DaysBetween(a, b time.Time) int {
	sa := StartOfDay(a)
	sb := StartOfDay(b.In(a.Location()))
	n := 0
	for sa.Before(sb) {
		sa = AddDays(sa, 1)
		n++
	}
	for sb.Before(sa) {
		sb = AddDays(sb, 1)
		n--
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

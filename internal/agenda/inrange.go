package agenda

import "time"

// InRange reports whether event overlaps the half-open range [start, end).
//
// An event ending exactly at start or beginning exactly at end does not
// overlap. A zero-length event is an instant and overlaps iff
// start <= event.start < end.
func InRange(event any, start, end time.Time, acc Accessors) bool {
	return overlaps(acc.Start.Resolve(event), acc.End.Resolve(event), start, end)
}

func overlaps(eStart, eEnd, start, end time.Time) bool {
	if !eStart.Before(end) {
		return false
	}
	if eStart.Equal(eEnd) {
		return !eStart.Before(start)
	}
	return eEnd.After(start)
}

package agenda

import (
	"time"

	"agendacal/internal/dates"
)

// DefaultLength is the number of days an agenda shows when the caller does
// not choose one.
const DefaultLength = 30

// Direction is a navigation action on the agenda toolbar.
type Direction string

const (
	Previous Direction = "PREV"
	Next     Direction = "NEXT"
	Today    Direction = "TODAY"
	Date     Direction = "DATE"
)

// Window is the half-open interval [Start, End) currently displayed.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Empty reports whether the window holds no instant.
func (w Window) Empty() bool { return !w.End.After(w.Start) }

// ComputeWindow returns [anchor, anchor+lengthDays). A non-positive length
// yields an empty window anchored at anchor.
func ComputeWindow(anchor time.Time, lengthDays int) Window {
	if lengthDays <= 0 {
		return Window{Start: anchor, End: anchor}
	}
	return Window{Start: anchor, End: dates.AddDays(anchor, lengthDays)}
}

// DaySequence lists every day of w, starting at w.Start and stepping one
// calendar day at a time.
func DaySequence(w Window) []time.Time {
	return dates.Range(w.Start, w.End)
}

// Navigate moves date by one agenda page in the given direction. Unknown
// directions leave date unchanged. Steps are whole calendar days measured
// from the start of date's day, so NEXT followed by PREV lands on date
// again across DST changes.
func Navigate(date time.Time, dir Direction, lengthDays int) time.Time {
	switch dir {
	case Previous:
		return dates.ShiftDays(date, -lengthDays)
	case Next:
		return dates.ShiftDays(date, lengthDays)
	default:
		return date
	}
}

// TitleLabel formats the displayed window for the toolbar header.
func TitleLabel(anchor time.Time, lengthDays int, layout, culture string, f Formatter) string {
	w := ComputeWindow(anchor, lengthDays)
	return f.Format(Range{Start: w.Start, End: w.End}, layout, culture)
}

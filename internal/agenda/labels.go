package agenda

import (
	"time"

	"agendacal/internal/dates"
)

// Label is the display text of one (day, event) row.
type Label struct {
	// DateLabel is set only on the first row of a day group.
	DateLabel       *string `json:"date_label,omitempty"`
	TimeLabel       string  `json:"time_label"`
	ContinuesBefore bool    `json:"continues_before"`
	ContinuesAfter  bool    `json:"continues_after"`
}

// LabelDeriver computes row labels.
type LabelDeriver struct {
	Accessors Accessors
	Formats   Formats
	Culture   string
	Messages  Messages
	Formatter Formatter
}

// DeriveLabels labels event as shown under day.
//
// The time label is the "all day" message for all-day events, the time
// range for timed events within one day, the start time on the start day
// and the end time on the end day of a multi-day event. Days strictly
// between start and end fall back to the "all day" message.
//
// An end exactly at midnight is exclusive: the event's last day is the day
// before, so a one-day all-day event does not continue after its day.
func (d LabelDeriver) DeriveLabels(day time.Time, event any, isFirstInDayGroup bool) Label {
	var l Label

	if isFirstInDayGroup {
		s := d.Formatter.Format(day, d.Formats.AgendaDate, d.Culture)
		l.DateLabel = &s
	}

	start := d.Accessors.Start.Resolve(event)
	end := d.Accessors.End.Resolve(event)
	last := lastInstant(start, end)

	l.TimeLabel = d.Messages.AllDay
	switch {
	case d.Accessors.AllDay.Resolve(event):
		// keeps the all day message
	case dates.EqDay(start, last):
		l.TimeLabel = d.Formatter.Format(Range{Start: start, End: end}, d.Formats.AgendaTimeRange, d.Culture)
	case dates.EqDay(day, start):
		l.TimeLabel = d.Formatter.Format(start, d.Formats.AgendaTime, d.Culture)
	case dates.EqDay(day, last):
		l.TimeLabel = d.Formatter.Format(end, d.Formats.AgendaTime, d.Culture)
	}

	l.ContinuesBefore = dates.GtDay(day, start)
	l.ContinuesAfter = dates.LtDay(day, last)
	return l
}

// lastInstant is the last moment [start, end) covers. It differs from end
// only when end falls exactly on midnight after start.
func lastInstant(start, end time.Time) time.Time {
	if end.After(start) && end.Equal(dates.StartOfDay(end)) {
		return end.Add(-time.Nanosecond)
	}
	return end
}

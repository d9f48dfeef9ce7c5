package agenda

import (
	"slices"
	"time"

	"agendacal/internal/dates"
)

// DayBucket holds the events to render under one calendar day.
type DayBucket struct {
	Day    time.Time
	Events []any
}

// Partition filters events to those overlapping w, orders them by start
// (stable, so equal starts keep input order) and buckets them per day of
// w. Every day of the window gets a bucket, empty or not, and an event
// spanning several days lands in each of them. Accessors are checked
// against the first event so a misspelled field name fails instead of
// silently hiding every event.
func Partition(events []any, w Window, acc Accessors) ([]DayBucket, error) {
	if err := acc.Validate(); err != nil {
		return nil, err
	}
	if len(events) > 0 {
		if err := acc.Check(events[0]); err != nil {
			return nil, err
		}
	}

	days := DaySequence(w)
	if len(days) == 0 {
		return []DayBucket{}, nil
	}

	visible := make([]any, 0, len(events))
	for _, ev := range events {
		if InRange(ev, w.Start, w.End, acc) {
			visible = append(visible, ev)
		}
	}

	slices.SortStableFunc(visible, func(a, b any) int {
		return acc.Start.Resolve(a).Compare(acc.Start.Resolve(b))
	})

	buckets := make([]DayBucket, 0, len(days))
	for _, day := range days {
		from, to := dates.StartOfDay(day), dates.EndOfDay(day)
		b := DayBucket{Day: day, Events: []any{}}
		for _, ev := range visible {
			if InRange(ev, from, to, acc) {
				b.Events = append(b.Events, ev)
			}
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

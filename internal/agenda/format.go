package agenda

import (
	"fmt"
	"time"
)

// Range is a start/end pair handed to a Formatter.
type Range struct {
	Start time.Time
	End   time.Time
}

// Formatter turns a time.Time or a Range into display text. layout and
// culture are caller configuration and opaque to the agenda.
type Formatter interface {
	Format(value any, layout, culture string) string
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(value any, layout, culture string) string

func (f FormatterFunc) Format(value any, layout, culture string) string { return f(value, layout, culture) }

// LayoutFormatter reads layout as a Go time layout. Ranges render both ends
// with the same layout joined by Separator ("–" when empty). culture is
// ignored.
type LayoutFormatter struct {
	Separator string
}

func (l LayoutFormatter) Format(value any, layout, _ string) string {
	sep := l.Separator
	if sep == "" {
		sep = "–"
	}
	switch v := value.(type) {
	case time.Time:
		return v.Format(layout)
	case Range:
		return v.Start.Format(layout) + sep + v.End.Format(layout)
	case *Range:
		if v == nil {
			return ""
		}
		return v.Start.Format(layout) + sep + v.End.Format(layout)
	default:
		return fmt.Sprint(value)
	}
}

// Formats are the layouts used by the agenda.
type Formats struct {
	AgendaDate      string `yaml:"agenda_date" json:"agenda_date"`
	AgendaTime      string `yaml:"agenda_time" json:"agenda_time"`
	AgendaTimeRange string `yaml:"agenda_time_range" json:"agenda_time_range"`
	AgendaHeader    string `yaml:"agenda_header" json:"agenda_header"`
}

// DefaultFormats returns the stock layouts.
func DefaultFormats() Formats {
	return Formats{
		AgendaDate:      "Mon Jan 02",
		AgendaTime:      "15:04",
		AgendaTimeRange: "15:04",
		AgendaHeader:    "01/02/2006",
	}
}

// withDefaults fills empty layouts from DefaultFormats.
func (f Formats) withDefaults() Formats {
	d := DefaultFormats()
	if f.AgendaDate == "" {
		f.AgendaDate = d.AgendaDate
	}
	if f.AgendaTime == "" {
		f.AgendaTime = d.AgendaTime
	}
	if f.AgendaTimeRange == "" {
		f.AgendaTimeRange = d.AgendaTimeRange
	}
	if f.AgendaHeader == "" {
		f.AgendaHeader = d.AgendaHeader
	}
	return f
}

package agenda

import (
	"fmt"
	"time"

	"agendacal/internal/model"
)

// Props are extra presentation attributes attached to a row.
type Props struct {
	ClassName string `json:"class_name,omitempty"`
}

// Details are the optional presentational fields of an event. Missing
// values stay empty.
type Details struct {
	Customer string
	Phone    string
	Location string
	Status   string
	BlockOff bool
	OffTime  bool
}

// Options configure a View. Only Accessors is required; everything else
// has a default.
type Options struct {
	// Length is the number of days shown. nil means DefaultLength.
	Length *int

	Accessors Accessors
	Formats   Formats
	Culture   string
	// Messages overrides individual strings of the culture's table.
	Messages  Messages
	Formatter Formatter

	// Details extracts customer/location/status data. Defaults to
	// ModelDetails.
	Details func(event any) Details
	// EventPropGetter adds per-row props such as a CSS class.
	EventPropGetter func(event any, start, end time.Time, selected bool) Props
	// Selected reports whether event is the currently selected one.
	Selected func(event any) bool
}

// View builds agendas for a fixed configuration.
type View struct {
	length    int
	acc       Accessors
	formats   Formats
	culture   string
	messages  Messages
	formatter Formatter
	details   func(any) Details
	props     func(any, time.Time, time.Time, bool) Props
	selected  func(any) bool
}

// NewView validates opts and fills in defaults.
func NewView(opts Options) (*View, error) {
	if err := opts.Accessors.Validate(); err != nil {
		return nil, err
	}
	length := DefaultLength
	if opts.Length != nil {
		length = *opts.Length
	}
	v := &View{
		length:    length,
		acc:       opts.Accessors,
		formats:   opts.Formats.withDefaults(),
		culture:   opts.Culture,
		messages:  MessagesFor(opts.Culture, opts.Messages),
		formatter: opts.Formatter,
		details:   opts.Details,
		props:     opts.EventPropGetter,
		selected:  opts.Selected,
	}
	if v.formatter == nil {
		v.formatter = LayoutFormatter{}
	}
	if v.details == nil {
		v.details = ModelDetails
	}
	return v, nil
}

// Length is the configured number of days.
func (v *View) Length() int { return v.length }

// Messages returns the resolved UI strings.
func (v *View) Messages() Messages { return v.messages }

// Row is one rendered (day, event) line.
type Row struct {
	Label
	Title       string `json:"title"`
	Tooltip     string `json:"tooltip"`
	Customer    string `json:"customer"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	StatusClass string `json:"status_class"`
	ClassName   string `json:"class_name,omitempty"`
	Selected    bool   `json:"selected,omitempty"`
	AllDay      bool   `json:"all_day"`

	Event any `json:"-"`
}

// DayGroup is the rows of one calendar day. RowSpan is the number of rows
// the date cell covers.
type DayGroup struct {
	Day     time.Time `json:"day"`
	RowSpan int       `json:"row_span"`
	Rows    []Row     `json:"rows"`
}

// Agenda is a fully derived agenda page.
type Agenda struct {
	Title   string     `json:"title"`
	Window  Window     `json:"window"`
	Length  int        `json:"length"`
	Headers []string   `json:"headers"`
	Days    []DayGroup `json:"days"`
	Empty   bool       `json:"empty"`
	// NoEvents is the message shown when Empty is true.
	NoEvents string `json:"no_events,omitempty"`
}

// Build lays out events for the window starting at anchor.
func (v *View) Build(anchor time.Time, events []any) (Agenda, error) {
	return v.BuildLength(anchor, v.length, events)
}

// BuildLength is Build with an explicit day count.
func (v *View) BuildLength(anchor time.Time, length int, events []any) (Agenda, error) {
	w := ComputeWindow(anchor, length)
	buckets, err := Partition(events, w, v.acc)
	if err != nil {
		return Agenda{}, fmt.Errorf("agenda: partition: %w", err)
	}

	deriver := LabelDeriver{
		Accessors: v.acc,
		Formats:   v.formats,
		Culture:   v.culture,
		Messages:  v.messages,
		Formatter: v.formatter,
	}

	out := Agenda{
		Title:   TitleLabel(anchor, length, v.formats.AgendaHeader, v.culture, v.formatter),
		Window:  w,
		Length:  length,
		Headers: v.headers(),
		Days:    make([]DayGroup, 0, len(buckets)),
		Empty:   true,
	}
	for _, b := range buckets {
		g := DayGroup{Day: b.Day, RowSpan: len(b.Events), Rows: make([]Row, 0, len(b.Events))}
		for i, ev := range b.Events {
			g.Rows = append(g.Rows, v.row(deriver, b.Day, ev, i == 0))
		}
		if len(g.Rows) > 0 {
			out.Empty = false
		}
		out.Days = append(out.Days, g)
	}
	if out.Empty {
		out.NoEvents = v.messages.NoEvents
	}
	return out, nil
}

func (v *View) headers() []string {
	m := v.messages
	return []string{m.Date, m.Time, m.Event, m.Customer, m.Phone, m.Location, m.Status}
}

func (v *View) row(d LabelDeriver, day time.Time, ev any, first bool) Row {
	det := v.details(ev)
	r := Row{
		Label:    d.DeriveLabels(day, ev, first),
		Title:    v.acc.Title.Resolve(ev),
		Tooltip:  v.acc.Tooltip.Resolve(ev),
		Customer: det.Customer,
		Phone:    det.Phone,
		Location: det.Location,
		AllDay:   v.acc.AllDay.Resolve(ev),
		Event:    ev,
	}
	r.Status, r.StatusClass = statusBadge(det, v.messages)
	if v.selected != nil {
		r.Selected = v.selected(ev)
	}
	if v.props != nil {
		r.ClassName = v.props(ev, v.acc.Start.Resolve(ev), v.acc.End.Resolve(ev), r.Selected).ClassName
	}
	return r
}

// statusBadge returns the badge text and CSS class for an event.
func statusBadge(d Details, m Messages) (string, string) {
	if d.Status == "" {
		if d.BlockOff {
			return m.BlockTime, "badge-secondary"
		}
		return m.OffTime, "badge-secondary"
	}
	return d.Status, statusClass(d)
}

func statusClass(d Details) string {
	switch {
	case d.BlockOff:
		return "badge-info"
	case d.OffTime:
		return "badge-dark"
	}
	switch d.Status {
	case "Confirmed":
		return "badge-success"
	case "Unconfirmed":
		return "badge-warning"
	case "No-Show":
		return "badge-secondary"
	default:
		return "badge-info"
	}
}

// ModelDetails reads Details off model.Event values. Other record types
// produce empty Details.
func ModelDetails(event any) Details {
	var e model.Event
	switch v := event.(type) {
	case model.Event:
		e = v
	case *model.Event:
		if v == nil {
			return Details{}
		}
		e = *v
	default:
		return Details{}
	}

	d := Details{
		Location: e.Address,
		Status:   e.Status,
		BlockOff: e.BlockOff,
		OffTime:  e.OffTime,
	}
	if c := e.Customer; c != nil {
		d.Customer = c.FirstName + " " + c.LastName
		if c.PhoneNumber != "" {
			d.Phone = "+1" + c.PhoneNumber
		}
	}
	return d
}

package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "agendacal/internal/log"
	"agendacal/internal/model"
)

// Non-standard properties carrying booking data.
const (
	propCustomerPhone ical.ComponentProperty = "X-CUSTOMER-PHONE"
	propBookingStatus ical.ComponentProperty = "X-BOOKING-STATUS"
	propRecurrenceID  ical.ComponentProperty = "RECURRENCE-ID"
)

// Category names that flag blocked or off time.
const (
	categoryBlockOff = "BLOCKOFF"
	categoryOffTime  = "OFFTIME"
)

// ParseICS parses an ICS payload into events normalized into loc.
//
//   - All-day events (DTSTART;VALUE=DATE or a date-only value) become
//     [midnight, midnight) in loc on their calendar dates.
//   - Timed events are converted to loc.
//   - Recurring events contribute their first instance only; per-instance
//     overrides (RECURRENCE-ID) are skipped.
//   - A VEVENT that cannot be parsed is logged and skipped.
func ParseICS(src Source, body []byte, loc *time.Location) ([]model.Event, error) {
	if len(body) == 0 {
		return nil, errors.New("ics: empty body")
	}
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "id", src.ID, "url", redactURL(src.URL))
		return nil, err
	}

	events := make([]model.Event, 0)
	for _, ve := range cal.Events() {
		if ve.GetProperty(propRecurrenceID) != nil {
			appLog.Debug("ics: skipping recurrence override", "id", src.ID)
			continue
		}
		ev, perr := parseVEvent(src, ve, loc)
		if perr != nil {
			appLog.Error("ics vevent parse failed", perr, "id", src.ID, "url", redactURL(src.URL))
			continue
		}
		events = append(events, ev)
	}

	appLog.Info("ics parse completed", "id", src.ID, "url", redactURL(src.URL), "event_count", len(events))
	return events, nil
}

func parseVEvent(src Source, ve *ical.VEvent, loc *time.Location) (model.Event, error) {
	out := model.Event{SourceID: src.ID}

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value

	out.Title = propValue(ve, ical.ComponentPropertySummary)
	out.Description = propValue(ve, ical.ComponentPropertyDescription)
	out.Address = propValue(ve, ical.ComponentPropertyLocation)

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, errors.New("missing DTSTART")
	}
	out.AllDay = isDateOnly(dtStart)

	start, err := ve.GetStartAt()
	if err != nil {
		// Fall back to the bare value when the library rejects the form.
		if start, err = parseICSTime(dtStart.Value); err != nil {
			return out, err
		}
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end, err = parseICSTime(propValue(ve, ical.ComponentPropertyDtEnd))
	}
	if err != nil {
		// No DTEND: a timed event is an instant, an all-day event one day.
		end = start
		if out.AllDay {
			end = start.AddDate(0, 0, 1)
		}
	}

	if out.AllDay {
		out.Start = dateIn(start, loc)
		out.End = dateIn(end, loc)
		if !out.End.After(out.Start) {
			out.End = out.Start.AddDate(0, 0, 1)
		}
	} else {
		out.Start = start.In(loc)
		out.End = end.In(loc)
	}
	if out.End.Before(out.Start) {
		return out, errors.New("DTEND before DTSTART")
	}

	if ve.GetProperty(ical.ComponentPropertyRrule) != nil {
		appLog.Debug("ics: recurring event kept as first instance", "id", src.ID, "uid", out.UID)
	}

	out.Status = bookingStatus(ve)
	for _, c := range categories(ve) {
		switch c {
		case categoryBlockOff:
			out.BlockOff = true
		case categoryOffTime:
			out.OffTime = true
		}
	}
	out.Customer = customer(ve)

	return out, nil
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// isDateOnly reports VALUE=DATE or a value without a time part.
func isDateOnly(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// dateIn keeps t's calendar date and places it at midnight in loc.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// bookingStatus maps X-BOOKING-STATUS, or STATUS when absent, onto the
// agenda's status names.
func bookingStatus(ve *ical.VEvent) string {
	if v := strings.TrimSpace(propValue(ve, propBookingStatus)); v != "" {
		return v
	}
	switch strings.ToUpper(strings.TrimSpace(propValue(ve, ical.ComponentPropertyStatus))) {
	case "CONFIRMED":
		return "Confirmed"
	case "TENTATIVE":
		return "Unconfirmed"
	case "CANCELLED":
		return "Cancelled"
	default:
		return ""
	}
}

func categories(ve *ical.VEvent) []string {
	var out []string
	for _, p := range ve.GetProperties(ical.ComponentPropertyCategories) {
		for _, c := range strings.Split(p.Value, ",") {
			c = strings.ToUpper(strings.TrimSpace(c))
			if c != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

// customer builds the booked person from the first ATTENDEE's CN and the
// X-CUSTOMER-PHONE property.
func customer(ve *ical.VEvent) *model.Customer {
	phone := strings.TrimSpace(propValue(ve, propCustomerPhone))

	var name string
	for _, p := range ve.GetProperties(ical.ComponentPropertyAttendee) {
		if cn, ok := p.ICalParameters["CN"]; ok && len(cn) > 0 && cn[0] != "" {
			name = strings.Trim(cn[0], `"`)
			break
		}
	}
	if name == "" && phone == "" {
		return nil
	}

	first, last, _ := strings.Cut(name, " ")
	return &model.Customer{FirstName: first, LastName: last, PhoneNumber: phone}
}

// parseICSTime parses a bare DATE or DATE-TIME value: UTC ("...Z"),
// floating local time, or a date.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}

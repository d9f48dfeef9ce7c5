package model

import "time"

// Customer is the person an appointment is booked for.
type Customer struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

// Event is a single calendar entry as ingested from a source. The agenda
// core never reads these fields directly; it goes through accessors, so
// callers may hand it any record type.
type Event struct {
	SourceID string // calendar source ID (config ICS ID)
	UID      string // iCalendar UID

	Title       string
	Description string
	Address     string

	AllDay bool

	// Start / End in the configured display timezone. End is exclusive.
	Start time.Time
	End   time.Time

	// Status is the booking status ("Confirmed", "Unconfirmed", "No-Show").
	Status string
	// BlockOff marks time blocked on the calendar; OffTime marks time off.
	BlockOff bool
	OffTime  bool

	Customer *Customer
}

// Tooltip is the hover text shown for the event: the description if any,
// otherwise the title.
func (e Event) Tooltip() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Title
}

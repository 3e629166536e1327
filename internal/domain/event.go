package domain

import "time"

// Event is a ticketed happening at a venue.
type Event struct {
	ID          string
	VenueID     string
	Name        string
	Description string
	Date        time.Time
}

// EventSummary is the event list projection (event plus its venue).
type EventSummary struct {
	Event
	Venue Venue
}

// EventDetail additionally carries the event's ticket types.
type EventDetail struct {
	Event
	Venue       Venue
	TicketTypes []TicketType
}

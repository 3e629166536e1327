package domain

import "time"

// Booking is a customer's reservation of some quantity of a ticket type.
// TotalPrice is snapshotted at booking time and never recomputed. Cancelled
// moves false->true exactly once; bookings are never deleted.
type Booking struct {
	ID            string
	TicketTypeID  string
	CustomerName  string
	CustomerEmail string
	Quantity      int
	TotalPrice    float64
	BookingDate   time.Time
	Cancelled     bool
}

// BookingView is the read projection for API responses: the booking plus the
// ticket type and event fields callers need, fetched in one query.
type BookingView struct {
	Booking
	TicketTypeName string
	EventID        string
	EventName      string
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrVenueNotFound       = errors.New("venue not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrTicketTypeNotFound  = errors.New("ticket type not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrAlreadyCancelled    = errors.New("booking already cancelled")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrCustomerRequired    = errors.New("customer name and email required")
	ErrVenueNameRequired   = errors.New("venue name required")
	ErrEventNameRequired   = errors.New("event name required")
	ErrTicketNameRequired  = errors.New("ticket type name required")
	ErrTicketsRequired     = errors.New("at least one ticket type required")
	ErrInvalidCapacity     = errors.New("invalid capacity")
	ErrInvalidID           = errors.New("invalid id")
	ErrInsufficientTickets = errors.New("insufficient tickets available")
	ErrInventoryInvariant  = errors.New("inventory invariant violated")
)

// InsufficientTicketsError reports the available count observed at the moment
// the conditional debit failed, so callers can show how many are actually left.
type InsufficientTicketsError struct {
	TicketTypeID string
	Requested    int
	Available    int
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("insufficient tickets available: requested %d, available %d", e.Requested, e.Available)
}

func (e *InsufficientTicketsError) Is(target error) bool {
	return target == ErrInsufficientTickets
}

// InventoryInvariantError indicates a credit would push available above total.
// This is a bug in the atomicity guarantee, never an expected business outcome.
type InventoryInvariantError struct {
	TicketTypeID string
	Available    int
	Total        int
}

func (e *InventoryInvariantError) Error() string {
	return fmt.Sprintf("inventory invariant violated for ticket type %s: available %d exceeds total %d", e.TicketTypeID, e.Available, e.Total)
}

func (e *InventoryInvariantError) Is(target error) bool {
	return target == ErrInventoryInvariant
}

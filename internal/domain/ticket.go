package domain

// TicketType is a purchasable category of admission to an event with finite
// inventory. Available only moves through booking debits and cancellation
// credits; 0 <= Available <= Total always holds.
type TicketType struct {
	ID        string
	EventID   string
	Name      string
	Price     float64
	Total     int
	Available int
}

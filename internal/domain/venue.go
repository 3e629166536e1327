package domain

// Venue is a physical location that hosts events.
type Venue struct {
	ID       string
	Name     string
	Address  string
	City     string
	Capacity int
}

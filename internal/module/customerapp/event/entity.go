package event

import "time"

type Event struct {
	ID            string
	Title         string
	Subtitle      *string
	Description   string
	Date          time.Time
	Location      string
	OrganizerID   int64
	OrganizerName string
	Trending      bool
	Photo         *string
	Attendees     []Attendee
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Attendee is one row of the event's attendee set. Name and email are
// denormalized from the session at RSVP time so reads and reminder mail
// never call back into the account service.
type Attendee struct {
	EventID       string
	CustomerID    int64
	CustomerName  string
	CustomerEmail string
	CreatedAt     time.Time
}

// Receipt is the outcome of a successful ticket purchase. It is never
// persisted; the inventory's sold counter is the durable record.
type Receipt struct {
	ID            string
	EventID       string
	EventTitle    string
	EventDate     time.Time
	EventLocation string
	Quantity      int64
	CustomerID    int64
	CustomerName  string
	CustomerEmail string
	PurchasedAt   time.Time
}

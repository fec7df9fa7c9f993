package event

import "time"

type TicketPurchasedEvent struct {
	ReceiptID   string    `json:"receipt_id"`
	EventID     string    `json:"event_id"`
	CustomerID  int64     `json:"customer_id"`
	Quantity    int64     `json:"quantity"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type RSVPedEvent struct {
	EventID    string    `json:"event_id"`
	CustomerID int64     `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReminderEvent is posted back by the task queue on the event's date.
type ReminderEvent struct {
	EventID string `json:"event_id"`
}

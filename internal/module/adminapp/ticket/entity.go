package ticket

import "time"

type TicketInventory struct {
	EventID         string
	Allocation      int64
	Sold            int64
	LastStockUpdate time.Time
}

package ticket

import "time"

// TicketInventory holds the per-event allocation and the running sold
// counter. The invariant sold <= allocation is owned by the storage layer's
// conditional update, never by in-memory arithmetic.
type TicketInventory struct {
	EventID         string
	Allocation      int64
	Sold            int64
	LastStockUpdate time.Time
}

func (ti TicketInventory) Available() int64 {
	return ti.Allocation - ti.Sold
}

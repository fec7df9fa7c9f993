package event

import (
	"time"

	"github.com/Bidex-03/ummah-connect/internal/module/adminapp/ticket"
)

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
	Tickets       ticket.TicketInventory
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

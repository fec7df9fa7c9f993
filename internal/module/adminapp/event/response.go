package event

import "time"

type TicketInventoryResponse struct {
	Limit int64 `json:"limit"`
	Sold  int64 `json:"sold"`
}

type EventResponse struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Subtitle      *string                 `json:"subtitle"`
	Description   string                  `json:"description"`
	Date          time.Time               `json:"date"`
	Location      string                  `json:"location"`
	OrganizerID   int64                   `json:"organizer_id"`
	OrganizerName string                  `json:"organizer_name"`
	Trending      bool                    `json:"trending"`
	Photo         *string                 `json:"photo"`
	Tickets       TicketInventoryResponse `json:"tickets"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

func (r *EventResponse) PopulateFromEntity(e Event) {
	r.ID = e.ID
	r.Title = e.Title
	r.Subtitle = e.Subtitle
	r.Description = e.Description
	r.Date = e.Date
	r.Location = e.Location
	r.OrganizerID = e.OrganizerID
	r.OrganizerName = e.OrganizerName
	r.Trending = e.Trending
	r.Photo = e.Photo
	r.Tickets = TicketInventoryResponse{
		Limit: e.Tickets.Allocation,
		Sold:  e.Tickets.Sold,
	}
	r.CreatedAt = e.CreatedAt
	r.UpdatedAt = e.UpdatedAt
}

type CreateEventResponse = EventResponse

type UpdateEventResponse = EventResponse

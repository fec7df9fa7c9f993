package event

import "time"

type AttendeeResponse struct {
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type TicketsResponse struct {
	Limit int64 `json:"limit"`
	Sold  int64 `json:"sold"`
}

type EventResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Subtitle      *string            `json:"subtitle"`
	Description   string             `json:"description"`
	Date          time.Time          `json:"date"`
	Location      string             `json:"location"`
	OrganizerID   int64              `json:"organizer_id"`
	OrganizerName string             `json:"organizer_name"`
	Trending      bool               `json:"trending"`
	Photo         *string            `json:"photo"`
	Attendees     []AttendeeResponse `json:"attendees"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
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
	r.CreatedAt = e.CreatedAt
	r.UpdatedAt = e.UpdatedAt

	attendees := make([]AttendeeResponse, len(e.Attendees))
	for k, v := range e.Attendees {
		attendees[k] = AttendeeResponse{
			CustomerID:   v.CustomerID,
			CustomerName: v.CustomerName,
			CreatedAt:    v.CreatedAt,
		}
	}
	r.Attendees = attendees
}

type GetManyEventResponse []EventResponse

type GetEventResponse struct {
	EventResponse
	Tickets TicketsResponse `json:"tickets"`
}

type GetTicketsSoldResponse struct {
	EventID     string `json:"event_id"`
	TicketsSold int64  `json:"tickets_sold"`
}

type RSVPResponse struct {
	EventID      string    `json:"event_id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type BuyTicketResponse struct {
	ReceiptID     string    `json:"receipt_id"`
	EventID       string    `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	EventDate     time.Time `json:"event_date"`
	EventLocation string    `json:"event_location"`
	Quantity      int64     `json:"quantity"`
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

func (r *BuyTicketResponse) PopulateFromEntity(receipt Receipt) {
	r.ReceiptID = receipt.ID
	r.EventID = receipt.EventID
	r.EventTitle = receipt.EventTitle
	r.EventDate = receipt.EventDate
	r.EventLocation = receipt.EventLocation
	r.Quantity = receipt.Quantity
	r.CustomerID = receipt.CustomerID
	r.CustomerName = receipt.CustomerName
	r.PurchasedAt = receipt.PurchasedAt
}

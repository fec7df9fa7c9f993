package event

type BuyTicketRequest struct {
	EventID  string `json:"-" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gte=1"`
}

type RSVPRequest struct {
	EventID string `json:"-" validate:"required"`
}

package event

import (
	"time"

	"github.com/Bidex-03/ummah-connect/internal/module/adminapp/ticket"
	"github.com/Bidex-03/ummah-connect/internal/pkg/session"
	"github.com/Bidex-03/ummah-connect/internal/pkg/util"
)

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Subtitle    string `json:"subtitle" validate:"-"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Location    string `json:"location" validate:"required"`
	Trending    bool   `json:"trending" validate:"-"`
	Photo       string `json:"photo" validate:"omitempty,url"`
	TicketLimit int64  `json:"ticket_limit" validate:"required,gte=1"`
}

func (r CreateEventRequest) ToEntityEvent(organizer session.Account, now time.Time) Event {
	event := Event{
		ID:            util.GenerateTimestampWithPrefix("EV"),
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		OrganizerID:   organizer.ID,
		OrganizerName: organizer.Name,
		Trending:      r.Trending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// The date format is enforced by validation before this point.
	event.Date, _ = time.Parse(time.RFC3339, r.Date)

	if r.Subtitle != "" {
		event.Subtitle = &r.Subtitle
	}
	if r.Photo != "" {
		event.Photo = &r.Photo
	}

	event.Tickets = ticket.TicketInventory{
		EventID:         event.ID,
		Allocation:      r.TicketLimit,
		Sold:            0,
		LastStockUpdate: now,
	}

	return event
}

// UpdateEventRequest is a partial patch: zero-valued fields leave the
// stored value untouched.
type UpdateEventRequest struct {
	EventID     string `json:"-" validate:"required"`
	Title       string `json:"title" validate:"-"`
	Subtitle    string `json:"subtitle" validate:"-"`
	Description string `json:"description" validate:"-"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Location    string `json:"location" validate:"-"`
	Trending    bool   `json:"trending" validate:"-"`
	Photo       string `json:"photo" validate:"omitempty,url"`
}

// ApplyToEntity overlays the patch's non-zero fields on e.
func (r UpdateEventRequest) ApplyToEntity(e *Event, now time.Time) {
	if r.Title != "" {
		e.Title = r.Title
	}
	if r.Subtitle != "" {
		subtitle := r.Subtitle
		e.Subtitle = &subtitle
	}
	if r.Description != "" {
		e.Description = r.Description
	}
	if r.Date != "" {
		e.Date, _ = time.Parse(time.RFC3339, r.Date)
	}
	if r.Location != "" {
		e.Location = r.Location
	}
	if r.Trending {
		e.Trending = true
	}
	if r.Photo != "" {
		photo := r.Photo
		e.Photo = &photo
	}

	e.UpdatedAt = now
}

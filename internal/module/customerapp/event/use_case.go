package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Bidex-03/ummah-connect/internal/module/customerapp/mailer"
	"github.com/Bidex-03/ummah-connect/internal/module/customerapp/ticket"
	"github.com/Bidex-03/ummah-connect/internal/pkg/session"
	"github.com/Bidex-03/ummah-connect/internal/pkg/util"
	"github.com/Bidex-03/ummah-connect/pkg/pubsub"
)

type EventUseCase interface {
	GetManyEvent(ctx context.Context) (GetManyEventResponse, error)
	GetEvent(ctx context.Context, ID string) (GetEventResponse, error)
	GetManyUpcomingEvent(ctx context.Context) (GetManyEventResponse, error)
	GetManyPastEvent(ctx context.Context) (GetManyEventResponse, error)
	GetManyTrendingEvent(ctx context.Context) (GetManyEventResponse, error)
	GetTicketsSold(ctx context.Context, ID string) (GetTicketsSoldResponse, error)
	RSVP(ctx context.Context, req RSVPRequest) (RSVPResponse, error)
	BuyTicket(ctx context.Context, req BuyTicketRequest) (BuyTicketResponse, error)
	OnReminderEvent(ctx context.Context, e ReminderEvent) error
}

type eventUseCase struct {
	logger                    *logrus.Logger
	timeout                   time.Duration
	emailSender               string
	eventRepository           EventRepository
	attendeeRepository        AttendeeRepository
	ticketInventoryRepository ticket.TicketInventoryRepository
	publisher                 pubsub.Publisher
	mailerRepository          mailer.MailerRepository
}

type EventUseCaseProperty struct {
	Logger                    *logrus.Logger
	Timeout                   time.Duration
	EmailSender               string
	EventRepository           EventRepository
	AttendeeRepository        AttendeeRepository
	TicketInventoryRepository ticket.TicketInventoryRepository
	Publisher                 pubsub.Publisher
	MailerRepository          mailer.MailerRepository
}

func NewEventUseCase(props EventUseCaseProperty) EventUseCase {
	return &eventUseCase{
		logger:                    props.Logger,
		timeout:                   props.Timeout,
		emailSender:               props.EmailSender,
		eventRepository:           props.EventRepository,
		attendeeRepository:        props.AttendeeRepository,
		ticketInventoryRepository: props.TicketInventoryRepository,
		publisher:                 props.Publisher,
		mailerRepository:          props.MailerRepository,
	}
}

func (u *eventUseCase) populateAttendees(ctx context.Context, events []Event) (GetManyEventResponse, error) {
	resp := make(GetManyEventResponse, len(events))
	for k, e := range events {
		attendees, err := u.attendeeRepository.FindManyByEventID(ctx, e.ID, nil)
		if err != nil {
			return nil, err
		}
		e.Attendees = attendees

		resp[k].PopulateFromEntity(e)
	}

	return resp, nil
}

// GetManyEvent implements EventUseCase.
func (u *eventUseCase) GetManyEvent(ctx context.Context) (GetManyEventResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	events, err := u.eventRepository.FindMany(ctx, nil)
	if err != nil {
		return nil, err
	}

	return u.populateAttendees(ctx, events)
}

// GetEvent implements EventUseCase.
func (u *eventUseCase) GetEvent(ctx context.Context, ID string) (GetEventResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	e, err := u.eventRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return GetEventResponse{}, err
	}

	attendees, err := u.attendeeRepository.FindManyByEventID(ctx, ID, nil)
	if err != nil {
		return GetEventResponse{}, err
	}
	e.Attendees = attendees

	ti, err := u.ticketInventoryRepository.FindByEventID(ctx, ID, nil)
	if err != nil {
		return GetEventResponse{}, err
	}

	resp := GetEventResponse{}
	resp.PopulateFromEntity(e)
	resp.Tickets = TicketsResponse{
		Limit: ti.Allocation,
		Sold:  ti.Sold,
	}

	return resp, nil
}

// GetManyUpcomingEvent implements EventUseCase. Upcoming and past share the
// same boundary instant, so every event lands in exactly one of them.
func (u *eventUseCase) GetManyUpcomingEvent(ctx context.Context) (GetManyEventResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	events, err := u.eventRepository.FindManyUpcoming(ctx, time.Now(), nil)
	if err != nil {
		return nil, err
	}

	return u.populateAttendees(ctx, events)
}

// GetManyPastEvent implements EventUseCase.
func (u *eventUseCase) GetManyPastEvent(ctx context.Context) (GetManyEventResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	events, err := u.eventRepository.FindManyPast(ctx, time.Now(), nil)
	if err != nil {
		return nil, err
	}

	return u.populateAttendees(ctx, events)
}

// GetManyTrendingEvent implements EventUseCase.
func (u *eventUseCase) GetManyTrendingEvent(ctx context.Context) (GetManyEventResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	events, err := u.eventRepository.FindManyTrending(ctx, nil)
	if err != nil {
		return nil, err
	}

	return u.populateAttendees(ctx, events)
}

// GetTicketsSold implements EventUseCase.
func (u *eventUseCase) GetTicketsSold(ctx context.Context, ID string) (GetTicketsSoldResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	ti, err := u.ticketInventoryRepository.FindByEventID(ctx, ID, nil)
	if err != nil {
		return GetTicketsSoldResponse{}, err
	}

	return GetTicketsSoldResponse{
		EventID:     ti.EventID,
		TicketsSold: ti.Sold,
	}, nil
}

// RSVP implements EventUseCase.
func (u *eventUseCase) RSVP(ctx context.Context, req RSVPRequest) (RSVPResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return RSVPResponse{}, err
	}

	e, err := u.eventRepository.FindByID(ctx, req.EventID, nil)
	if err != nil {
		return RSVPResponse{}, err
	}

	now := time.Now()
	attendee := Attendee{
		EventID:       e.ID,
		CustomerID:    acc.ID,
		CustomerName:  acc.Name,
		CustomerEmail: acc.Email,
		CreatedAt:     now,
	}

	if err := u.attendeeRepository.AddIfAbsent(ctx, attendee, nil); err != nil {
		return RSVPResponse{}, err
	}

	buff, _ := json.Marshal(RSVPedEvent{
		EventID:    e.ID,
		CustomerID: acc.ID,
		CreatedAt:  now,
	})
	u.publisher.Publish(ctx, "event-rsvp", e.ID, nil, buff)

	return RSVPResponse{
		EventID:      e.ID,
		CustomerID:   acc.ID,
		CustomerName: acc.Name,
		CreatedAt:    now,
	}, nil
}

// BuyTicket implements EventUseCase. The sold counter is advanced by a
// single conditional update in the inventory repository; there is no
// read-then-write window for concurrent purchases to race through.
func (u *eventUseCase) BuyTicket(ctx context.Context, req BuyTicketRequest) (BuyTicketResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return BuyTicketResponse{}, err
	}

	e, err := u.eventRepository.FindByID(ctx, req.EventID, nil)
	if err != nil {
		return BuyTicketResponse{}, err
	}

	if err := u.ticketInventoryRepository.IncrementSoldIfAvailable(ctx, e.ID, req.Quantity, nil); err != nil {
		return BuyTicketResponse{}, err
	}

	now := time.Now()
	receipt := Receipt{
		ID:            util.GenerateUUID(),
		EventID:       e.ID,
		EventTitle:    e.Title,
		EventDate:     e.Date,
		EventLocation: e.Location,
		Quantity:      req.Quantity,
		CustomerID:    acc.ID,
		CustomerName:  acc.Name,
		CustomerEmail: acc.Email,
		PurchasedAt:   now,
	}

	buff, _ := json.Marshal(TicketPurchasedEvent{
		ReceiptID:   receipt.ID,
		EventID:     receipt.EventID,
		CustomerID:  receipt.CustomerID,
		Quantity:    receipt.Quantity,
		PurchasedAt: receipt.PurchasedAt,
	})
	u.publisher.Publish(ctx, "event-ticket-purchased", receipt.EventID, nil, buff)

	// The purchase is committed; confirmation mail must not delay the
	// response nor undo the sale when it fails.
	go u.sendPurchaseConfirmation(receipt)

	resp := BuyTicketResponse{}
	resp.PopulateFromEntity(receipt)

	return resp, nil
}

func (u *eventUseCase) sendPurchaseConfirmation(receipt Receipt) {
	ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
	defer cancel()

	text := fmt.Sprintf(
		"Dear %s,\n\nThank you for purchasing %d ticket(s) for \"%s\".\n\nEvent Details:\nTitle: %s\nDate: %s\nLocation: %s\n\nWe appreciate your support and look forward to seeing you at the event.\n\nThe UmmahConnect Event Team",
		receipt.CustomerName, receipt.Quantity, receipt.EventTitle,
		receipt.EventTitle, receipt.EventDate.Format(time.RFC1123), receipt.EventLocation,
	)

	mail := mailer.Mail{
		From:    u.emailSender,
		To:      receipt.CustomerEmail,
		Subject: "Ticket Purchase Confirmation",
		Text:    text,
	}

	if err := u.mailerRepository.Send(ctx, mail); err != nil {
		u.logger.WithError(err).WithFields(logrus.Fields{
			"receiptId": receipt.ID,
			"eventId":   receipt.EventID,
		}).Warn("purchase confirmation email was not delivered")
	}
}

// OnReminderEvent implements EventUseCase. Fired by the task queue on the
// event's date; mails every attendee, continuing past individual failures.
func (u *eventUseCase) OnReminderEvent(ctx context.Context, e ReminderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	ev, err := u.eventRepository.FindByID(ctx, e.EventID, nil)
	if err != nil {
		return err
	}

	attendees, err := u.attendeeRepository.FindManyByEventID(ctx, ev.ID, nil)
	if err != nil {
		return err
	}

	for _, attendee := range attendees {
		text := fmt.Sprintf(
			"Dear %s,\n\nThis is a reminder that \"%s\" takes place today at %s, %s.\n\nSee you there,\nThe UmmahConnect Event Team",
			attendee.CustomerName, ev.Title, ev.Date.Format(time.Kitchen), ev.Location,
		)

		mail := mailer.Mail{
			From:    u.emailSender,
			To:      attendee.CustomerEmail,
			Subject: fmt.Sprintf("Reminder: %s is today", ev.Title),
			Text:    text,
		}

		if err := u.mailerRepository.Send(ctx, mail); err != nil {
			u.logger.WithContext(ctx).WithError(err).WithFields(logrus.Fields{
				"eventId":    ev.ID,
				"customerId": attendee.CustomerID,
			}).Warn("reminder email was not delivered")
		}
	}

	return nil
}

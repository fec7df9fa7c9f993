package event

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Bidex-03/ummah-connect/internal/module/customerapp/mailer"
	"github.com/Bidex-03/ummah-connect/internal/module/customerapp/ticket"
	"github.com/Bidex-03/ummah-connect/internal/pkg/session"
	"github.com/Bidex-03/ummah-connect/pkg/errors"
	"github.com/Bidex-03/ummah-connect/pkg/status"
)

type fakeEventRepository struct {
	mu     sync.Mutex
	events []Event
}

func (r *fakeEventRepository) FindByID(ctx context.Context, ID string, tx *sql.Tx) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.events {
		if e.ID == ID {
			return e, nil
		}
	}

	return Event{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("event with id '%s' is not found", ID))
}

func (r *fakeEventRepository) FindMany(ctx context.Context, tx *sql.Tx) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event{}, r.events...), nil
}

func (r *fakeEventRepository) FindManyUpcoming(ctx context.Context, now time.Time, tx *sql.Tx) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []Event
	for _, e := range r.events {
		if e.Date.After(now) {
			events = append(events, e)
		}
	}

	return events, nil
}

func (r *fakeEventRepository) FindManyPast(ctx context.Context, now time.Time, tx *sql.Tx) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []Event
	for _, e := range r.events {
		if !e.Date.After(now) {
			events = append(events, e)
		}
	}

	return events, nil
}

func (r *fakeEventRepository) FindManyTrending(ctx context.Context, tx *sql.Tx) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []Event
	for _, e := range r.events {
		if e.Trending {
			events = append(events, e)
		}
	}

	return events, nil
}

type fakeAttendeeRepository struct {
	mu        sync.Mutex
	attendees map[string]map[int64]Attendee
}

func newFakeAttendeeRepository() *fakeAttendeeRepository {
	return &fakeAttendeeRepository{attendees: map[string]map[int64]Attendee{}}
}

func (r *fakeAttendeeRepository) AddIfAbsent(ctx context.Context, attendee Attendee, tx *sql.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byCustomer, ok := r.attendees[attendee.EventID]
	if !ok {
		byCustomer = map[int64]Attendee{}
		r.attendees[attendee.EventID] = byCustomer
	}

	if _, ok := byCustomer[attendee.CustomerID]; ok {
		return errors.New(http.StatusConflict, status.ALREADY_RSVPED, "already RSVPed to this event")
	}

	byCustomer[attendee.CustomerID] = attendee

	return nil
}

func (r *fakeAttendeeRepository) FindManyByEventID(ctx context.Context, eventID string, tx *sql.Tx) ([]Attendee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attendees := make([]Attendee, 0, len(r.attendees[eventID]))
	for _, a := range r.attendees[eventID] {
		attendees = append(attendees, a)
	}

	return attendees, nil
}

type fakeTicketInventoryRepository struct {
	mu          sync.Mutex
	inventories map[string]ticket.TicketInventory
}

func newFakeTicketInventoryRepository() *fakeTicketInventoryRepository {
	return &fakeTicketInventoryRepository{inventories: map[string]ticket.TicketInventory{}}
}

func (r *fakeTicketInventoryRepository) FindByEventID(ctx context.Context, eventID string, tx *sql.Tx) (ticket.TicketInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ti, ok := r.inventories[eventID]
	if !ok {
		return ticket.TicketInventory{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("ticket inventory for event with id '%s' is not found", eventID))
	}

	return ti, nil
}

func (r *fakeTicketInventoryRepository) IncrementSoldIfAvailable(ctx context.Context, eventID string, quantity int64, tx *sql.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ti, ok := r.inventories[eventID]
	if !ok || ti.Sold+quantity > ti.Allocation {
		return errors.New(http.StatusConflict, status.SOLD_OUT, "not enough tickets available")
	}

	ti.Sold += quantity
	ti.LastStockUpdate = time.Now()
	r.inventories[eventID] = ti

	return nil
}

func (r *fakeTicketInventoryRepository) sold(eventID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.inventories[eventID].Sold
}

type publishedMessage struct {
	topic string
	key   string
}

type fakePublisher struct {
	mu        sync.Mutex
	published []publishedMessage
}

func (p *fakePublisher) Publish(ctx context.Context, topic string, key string, headers map[string]string, message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, publishedMessage{topic: topic, key: key})

	return nil
}

func (p *fakePublisher) Close() {}

type fakeMailerRepository struct {
	mu        sync.Mutex
	sent      []mailer.Mail
	failFor   map[string]struct{}
	delivered chan mailer.Mail
}

func newFakeMailerRepository() *fakeMailerRepository {
	return &fakeMailerRepository{
		failFor:   map[string]struct{}{},
		delivered: make(chan mailer.Mail, 64),
	}
}

func (r *fakeMailerRepository) Send(ctx context.Context, mail mailer.Mail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() { r.delivered <- mail }()

	if _, ok := r.failFor[mail.To]; ok {
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while sending email")
	}

	r.sent = append(r.sent, mail)

	return nil
}

func (r *fakeMailerRepository) waitForDelivery(t *testing.T) mailer.Mail {
	t.Helper()

	select {
	case mail := <-r.delivered:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("no email delivery attempt observed")
		return mailer.Mail{}
	}
}

type useCaseFixture struct {
	eventRepo    *fakeEventRepository
	attendeeRepo *fakeAttendeeRepository
	ticketRepo   *fakeTicketInventoryRepository
	publisher    *fakePublisher
	mailerRepo   *fakeMailerRepository
	useCase      EventUseCase
}

func newUseCaseFixture(events ...Event) *useCaseFixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &useCaseFixture{
		eventRepo:    &fakeEventRepository{events: events},
		attendeeRepo: newFakeAttendeeRepository(),
		ticketRepo:   newFakeTicketInventoryRepository(),
		publisher:    &fakePublisher{},
		mailerRepo:   newFakeMailerRepository(),
	}

	f.useCase = NewEventUseCase(EventUseCaseProperty{
		Logger:                    logger,
		Timeout:                   5 * time.Second,
		EmailSender:               "events@ummahconnect.example",
		EventRepository:           f.eventRepo,
		AttendeeRepository:        f.attendeeRepo,
		TicketInventoryRepository: f.ticketRepo,
		Publisher:                 f.publisher,
		MailerRepository:          f.mailerRepo,
	})

	return f
}

func testEvent(ID string, date time.Time) Event {
	return Event{
		ID:            ID,
		Title:         "Community Iftar",
		Description:   "An evening gathering for the whole community.",
		Date:          date,
		Location:      "Jakarta Convention Center",
		OrganizerID:   7,
		OrganizerName: "Aisha",
		CreatedAt:     date.Add(-30 * 24 * time.Hour),
		UpdatedAt:     date.Add(-30 * 24 * time.Hour),
	}
}

func customerCtx(ID int64) context.Context {
	return session.SetAccountToCtx(context.Background(), session.Account{
		ID:    ID,
		Name:  fmt.Sprintf("Customer %d", ID),
		Email: fmt.Sprintf("customer%d@mail.example", ID),
		Type:  session.TypeCustomer,
	})
}

func TestBuyTicket(t *testing.T) {
	eventDate := time.Now().Add(72 * time.Hour)

	t.Run("rejects a purchase that would exceed the allocation", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 10, Sold: 8}

		_, err := f.useCase.BuyTicket(customerCtx(1), BuyTicketRequest{EventID: "EV1", Quantity: 3})
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if ae := errors.Destruct(err); ae.Status != status.SOLD_OUT {
			t.Fatalf("expected status %s, got %s", status.SOLD_OUT, ae.Status)
		}
		if got := f.ticketRepo.sold("EV1"); got != 8 {
			t.Fatalf("expected sold to stay 8, got %d", got)
		}
	})

	t.Run("sells the exact remainder then rejects further purchases", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 10, Sold: 8}

		resp, err := f.useCase.BuyTicket(customerCtx(1), BuyTicketRequest{EventID: "EV1", Quantity: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ReceiptID == "" {
			t.Fatal("expected a receipt id")
		}
		if resp.Quantity != 2 {
			t.Fatalf("expected quantity 2 on the receipt, got %d", resp.Quantity)
		}
		if got := f.ticketRepo.sold("EV1"); got != 10 {
			t.Fatalf("expected sold 10, got %d", got)
		}

		_, err = f.useCase.BuyTicket(customerCtx(2), BuyTicketRequest{EventID: "EV1", Quantity: 1})
		if ae := errors.Destruct(err); ae.Status != status.SOLD_OUT {
			t.Fatalf("expected status %s, got %s", status.SOLD_OUT, ae.Status)
		}
	})

	t.Run("never oversells under concurrent purchases", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 100, Sold: 0}

		const buyers = 150

		var wg sync.WaitGroup
		results := make(chan error, buyers)

		for i := 0; i < buyers; i++ {
			wg.Add(1)
			go func(customerID int64) {
				defer wg.Done()
				_, err := f.useCase.BuyTicket(customerCtx(customerID), BuyTicketRequest{EventID: "EV1", Quantity: 1})
				results <- err
			}(int64(i + 1))
		}
		wg.Wait()
		close(results)

		var succeeded, rejected int
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			if ae := errors.Destruct(err); ae.Status != status.SOLD_OUT {
				t.Fatalf("unexpected status %s", ae.Status)
			}
			rejected++
		}

		if succeeded != 100 || rejected != 50 {
			t.Fatalf("expected 100 successes and 50 rejections, got %d and %d", succeeded, rejected)
		}
		if got := f.ticketRepo.sold("EV1"); got != 100 {
			t.Fatalf("expected sold 100, got %d", got)
		}
	})

	t.Run("sends a confirmation email to the buyer", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 10, Sold: 0}

		if _, err := f.useCase.BuyTicket(customerCtx(1), BuyTicketRequest{EventID: "EV1", Quantity: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mail := f.mailerRepo.waitForDelivery(t)
		if mail.To != "customer1@mail.example" {
			t.Fatalf("expected mail for customer1@mail.example, got %s", mail.To)
		}
		if mail.Subject != "Ticket Purchase Confirmation" {
			t.Fatalf("unexpected subject %q", mail.Subject)
		}
	})

	t.Run("a failed confirmation email does not fail the purchase", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 10, Sold: 0}
		f.mailerRepo.failFor["customer1@mail.example"] = struct{}{}

		if _, err := f.useCase.BuyTicket(customerCtx(1), BuyTicketRequest{EventID: "EV1", Quantity: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.mailerRepo.waitForDelivery(t)
		if got := f.ticketRepo.sold("EV1"); got != 1 {
			t.Fatalf("expected sold 1, got %d", got)
		}
	})

	t.Run("publishes a purchase message", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 10, Sold: 0}

		if _, err := f.useCase.BuyTicket(customerCtx(1), BuyTicketRequest{EventID: "EV1", Quantity: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.publisher.mu.Lock()
		defer f.publisher.mu.Unlock()
		if len(f.publisher.published) != 1 || f.publisher.published[0].topic != "event-ticket-purchased" {
			t.Fatalf("expected one message on event-ticket-purchased, got %+v", f.publisher.published)
		}
	})

	t.Run("returns not found for an unknown event", func(t *testing.T) {
		f := newUseCaseFixture()

		_, err := f.useCase.BuyTicket(customerCtx(1), BuyTicketRequest{EventID: "EV404", Quantity: 1})
		if ae := errors.Destruct(err); ae.HTTPStatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", ae.HTTPStatusCode)
		}
	})

	t.Run("rejects an anonymous purchase", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))

		_, err := f.useCase.BuyTicket(context.Background(), BuyTicketRequest{EventID: "EV1", Quantity: 1})
		if ae := errors.Destruct(err); ae.HTTPStatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", ae.HTTPStatusCode)
		}
	})
}

func TestRSVP(t *testing.T) {
	eventDate := time.Now().Add(72 * time.Hour)

	t.Run("registers the customer once", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))

		resp, err := f.useCase.RSVP(customerCtx(1), RSVPRequest{EventID: "EV1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.EventID != "EV1" || resp.CustomerID != 1 {
			t.Fatalf("unexpected response %+v", resp)
		}

		_, err = f.useCase.RSVP(customerCtx(1), RSVPRequest{EventID: "EV1"})
		if ae := errors.Destruct(err); ae.Status != status.ALREADY_RSVPED {
			t.Fatalf("expected status %s, got %s", status.ALREADY_RSVPED, ae.Status)
		}

		attendees, _ := f.attendeeRepo.FindManyByEventID(context.Background(), "EV1", nil)
		if len(attendees) != 1 {
			t.Fatalf("expected a single attendee row, got %d", len(attendees))
		}
	})

	t.Run("concurrent duplicate RSVPs register exactly one", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))

		const attempts = 20

		var wg sync.WaitGroup
		results := make(chan error, attempts)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.useCase.RSVP(customerCtx(1), RSVPRequest{EventID: "EV1"})
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var succeeded int
		for err := range results {
			if err == nil {
				succeeded++
			}
		}
		if succeeded != 1 {
			t.Fatalf("expected exactly one successful RSVP, got %d", succeeded)
		}

		attendees, _ := f.attendeeRepo.FindManyByEventID(context.Background(), "EV1", nil)
		if len(attendees) != 1 {
			t.Fatalf("expected a single attendee row, got %d", len(attendees))
		}
	})

	t.Run("the attendee appears on the event detail", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 10, Sold: 0}

		if _, err := f.useCase.RSVP(customerCtx(1), RSVPRequest{EventID: "EV1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp, err := f.useCase.GetEvent(context.Background(), "EV1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Attendees) != 1 || resp.Attendees[0].CustomerID != 1 {
			t.Fatalf("unexpected attendees %+v", resp.Attendees)
		}
	})

	t.Run("returns not found for an unknown event", func(t *testing.T) {
		f := newUseCaseFixture()

		_, err := f.useCase.RSVP(customerCtx(1), RSVPRequest{EventID: "EV404"})
		if ae := errors.Destruct(err); ae.HTTPStatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", ae.HTTPStatusCode)
		}
	})
}

func TestGetManyUpcomingAndPastEvent(t *testing.T) {
	now := time.Now()
	past := testEvent("EV-PAST", now.Add(-48*time.Hour))
	future := testEvent("EV-FUTURE", now.Add(48*time.Hour))
	farFuture := testEvent("EV-FAR", now.Add(30*24*time.Hour))

	f := newUseCaseFixture(past, future, farFuture)

	upcoming, err := f.useCase.GetManyUpcomingEvent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", len(upcoming))
	}
	for _, e := range upcoming {
		if e.ID == "EV-PAST" {
			t.Fatal("past event listed as upcoming")
		}
	}

	pastEvents, err := f.useCase.GetManyPastEvent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pastEvents) != 1 || pastEvents[0].ID != "EV-PAST" {
		t.Fatalf("unexpected past events %+v", pastEvents)
	}
}

func TestGetManyTrendingEvent(t *testing.T) {
	now := time.Now()
	plain := testEvent("EV-PLAIN", now.Add(24*time.Hour))
	trending := testEvent("EV-TRENDING", now.Add(24*time.Hour))
	trending.Trending = true

	f := newUseCaseFixture(plain, trending)

	resp, err := f.useCase.GetManyTrendingEvent(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "EV-TRENDING" {
		t.Fatalf("unexpected trending events %+v", resp)
	}
}

func TestGetTicketsSold(t *testing.T) {
	f := newUseCaseFixture(testEvent("EV1", time.Now().Add(24*time.Hour)))
	f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 50, Sold: 17}

	resp, err := f.useCase.GetTicketsSold(context.Background(), "EV1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TicketsSold != 17 {
		t.Fatalf("expected 17 tickets sold, got %d", resp.TicketsSold)
	}

	_, err = f.useCase.GetTicketsSold(context.Background(), "EV404")
	if ae := errors.Destruct(err); ae.HTTPStatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", ae.HTTPStatusCode)
	}
}

func TestOnReminderEvent(t *testing.T) {
	eventDate := time.Now().Add(2 * time.Hour)

	t.Run("mails every attendee", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		for i := int64(1); i <= 3; i++ {
			if _, err := f.useCase.RSVP(customerCtx(i), RSVPRequest{EventID: "EV1"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if err := f.useCase.OnReminderEvent(context.Background(), ReminderEvent{EventID: "EV1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.mailerRepo.mu.Lock()
		defer f.mailerRepo.mu.Unlock()
		if len(f.mailerRepo.sent) != 3 {
			t.Fatalf("expected 3 reminder emails, got %d", len(f.mailerRepo.sent))
		}
	})

	t.Run("continues past an undeliverable attendee", func(t *testing.T) {
		f := newUseCaseFixture(testEvent("EV1", eventDate))
		for i := int64(1); i <= 3; i++ {
			if _, err := f.useCase.RSVP(customerCtx(i), RSVPRequest{EventID: "EV1"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		f.mailerRepo.failFor["customer2@mail.example"] = struct{}{}

		if err := f.useCase.OnReminderEvent(context.Background(), ReminderEvent{EventID: "EV1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.mailerRepo.mu.Lock()
		defer f.mailerRepo.mu.Unlock()
		if len(f.mailerRepo.sent) != 2 {
			t.Fatalf("expected 2 delivered reminders, got %d", len(f.mailerRepo.sent))
		}
	})

	t.Run("returns not found for an unknown event", func(t *testing.T) {
		f := newUseCaseFixture()

		err := f.useCase.OnReminderEvent(context.Background(), ReminderEvent{EventID: "EV404"})
		if ae := errors.Destruct(err); ae.HTTPStatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", ae.HTTPStatusCode)
		}
	})
}

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/sirupsen/logrus"

	"github.com/Bidex-03/ummah-connect/internal/module/adminapp/ticket"
	"github.com/Bidex-03/ummah-connect/internal/pkg/session"
	"github.com/Bidex-03/ummah-connect/pkg/gctasks"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (CreateEventResponse, error)
	UpdateEvent(ctx context.Context, req UpdateEventRequest) (UpdateEventResponse, error)
	DeleteEvent(ctx context.Context, ID string) error
}

type eventUseCase struct {
	logger                    *logrus.Logger
	timeout                   time.Duration
	baseURL                   string
	eventRepository           EventRepository
	attendeeRepository        AttendeeRepository
	ticketInventoryRepository ticket.TicketInventoryRepository
	cloudTask                 gctasks.Client
}

type EventUseCaseProperty struct {
	Logger                    *logrus.Logger
	Timeout                   time.Duration
	BaseURL                   string
	EventRepository           EventRepository
	AttendeeRepository        AttendeeRepository
	TicketInventoryRepository ticket.TicketInventoryRepository
	CloudTask                 gctasks.Client
}

func NewEventUseCase(props EventUseCaseProperty) EventUseCase {
	return &eventUseCase{
		logger:                    props.Logger,
		timeout:                   props.Timeout,
		baseURL:                   props.BaseURL,
		eventRepository:           props.EventRepository,
		attendeeRepository:        props.AttendeeRepository,
		ticketInventoryRepository: props.TicketInventoryRepository,
		cloudTask:                 props.CloudTask,
	}
}

// CreateEvent implements EventUseCase.
func (u *eventUseCase) CreateEvent(ctx context.Context, req CreateEventRequest) (CreateEventResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return CreateEventResponse{}, err
	}

	now := time.Now()
	e := req.ToEntityEvent(acc, now)

	tx, err := u.eventRepository.BeginTx(ctx)
	if err != nil {
		return CreateEventResponse{}, err
	}

	if err := u.eventRepository.Save(ctx, e, tx); err != nil {
		u.eventRepository.Rollback(ctx, tx)
		return CreateEventResponse{}, err
	}

	if err := u.ticketInventoryRepository.Save(ctx, e.Tickets, tx); err != nil {
		u.eventRepository.Rollback(ctx, tx)
		return CreateEventResponse{}, err
	}

	if err := u.eventRepository.CommitTx(ctx, tx); err != nil {
		return CreateEventResponse{}, err
	}

	u.scheduleReminder(ctx, e)

	resp := CreateEventResponse{}
	resp.PopulateFromEntity(e)

	return resp, nil
}

// scheduleReminder defers the attendee reminder callback to the event's
// date. Scheduling is best effort; a failure never undoes the created
// event.
func (u *eventUseCase) scheduleReminder(ctx context.Context, e Event) {
	buff, _ := json.Marshal(struct {
		EventID string `json:"event_id"`
	}{EventID: e.ID})

	tasksRequest := gctasks.Request{
		URL:    fmt.Sprintf("%s/ummah-connect/v1/customerapp/events/on-reminder", u.baseURL),
		Method: cloudtaskspb.HttpMethod_POST,
		Body:   buff,
	}

	if err := u.cloudTask.DeferCreateTaskInTime("event-reminder", tasksRequest, e.Date); err != nil {
		u.logger.WithContext(ctx).WithError(err).WithField("eventId", e.ID).Warn("event reminder was not scheduled")
	}
}

// UpdateEvent implements EventUseCase. Only the patch's non-zero fields
// replace stored values.
func (u *eventUseCase) UpdateEvent(ctx context.Context, req UpdateEventRequest) (UpdateEventResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	tx, err := u.eventRepository.BeginTx(ctx)
	if err != nil {
		return UpdateEventResponse{}, err
	}

	e, err := u.eventRepository.FindByID(ctx, req.EventID, tx)
	if err != nil {
		u.eventRepository.Rollback(ctx, tx)
		return UpdateEventResponse{}, err
	}

	req.ApplyToEntity(&e, time.Now())

	if err := u.eventRepository.Update(ctx, e.ID, e, tx); err != nil {
		u.eventRepository.Rollback(ctx, tx)
		return UpdateEventResponse{}, err
	}

	if err := u.eventRepository.CommitTx(ctx, tx); err != nil {
		return UpdateEventResponse{}, err
	}

	ti, err := u.ticketInventoryRepository.FindByEventID(ctx, e.ID, nil)
	if err == nil {
		e.Tickets = ti
	}

	resp := UpdateEventResponse{}
	resp.PopulateFromEntity(e)

	return resp, nil
}

// DeleteEvent implements EventUseCase. The event, its inventory and its
// attendee set go together; there is no tombstone.
func (u *eventUseCase) DeleteEvent(ctx context.Context, ID string) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	tx, err := u.eventRepository.BeginTx(ctx)
	if err != nil {
		return err
	}

	if err := u.attendeeRepository.DeleteByEventID(ctx, ID, tx); err != nil {
		u.eventRepository.Rollback(ctx, tx)
		return err
	}

	if err := u.ticketInventoryRepository.DeleteByEventID(ctx, ID, tx); err != nil {
		u.eventRepository.Rollback(ctx, tx)
		return err
	}

	if err := u.eventRepository.Delete(ctx, ID, tx); err != nil {
		u.eventRepository.Rollback(ctx, tx)
		return err
	}

	return u.eventRepository.CommitTx(ctx, tx)
}

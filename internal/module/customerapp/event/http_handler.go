package event

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/Bidex-03/ummah-connect/internal/pkg/middleware"
	"github.com/Bidex-03/ummah-connect/pkg/errors"
	publicMiddleware "github.com/Bidex-03/ummah-connect/pkg/middleware"
	"github.com/Bidex-03/ummah-connect/pkg/response"
	"github.com/Bidex-03/ummah-connect/pkg/status"
)

type HTTPHandler struct {
	SessionMiddleware *middleware.CustomerSession
	Validate          *validator.Validate
	EventUseCase      EventUseCase
}

func InitHTTPHandler(router *mux.Router, customerSession *middleware.CustomerSession, validate *validator.Validate, eventUseCase EventUseCase) {
	handler := &HTTPHandler{
		Validate:     validate,
		EventUseCase: eventUseCase,
	}

	router.HandleFunc("/ummah-connect/v1/customerapp/events", publicMiddleware.SetRouteChain(handler.GetManyEvent)).Methods(http.MethodGet)
	router.HandleFunc("/ummah-connect/v1/customerapp/events/upcoming", publicMiddleware.SetRouteChain(handler.GetManyUpcomingEvent)).Methods(http.MethodGet)
	router.HandleFunc("/ummah-connect/v1/customerapp/events/past", publicMiddleware.SetRouteChain(handler.GetManyPastEvent)).Methods(http.MethodGet)
	router.HandleFunc("/ummah-connect/v1/customerapp/events/trending", publicMiddleware.SetRouteChain(handler.GetManyTrendingEvent)).Methods(http.MethodGet)
	router.HandleFunc("/ummah-connect/v1/customerapp/events/on-reminder", publicMiddleware.SetRouteChain(handler.OnReminderEvent)).Methods(http.MethodPost)
	router.HandleFunc("/ummah-connect/v1/customerapp/events/{eventId}", publicMiddleware.SetRouteChain(handler.GetEvent)).Methods(http.MethodGet)
	router.HandleFunc("/ummah-connect/v1/customerapp/events/{eventId}/tickets-sold", publicMiddleware.SetRouteChain(handler.GetTicketsSold)).Methods(http.MethodGet)
	router.HandleFunc("/ummah-connect/v1/customerapp/events/{eventId}/rsvp", publicMiddleware.SetRouteChain(handler.RSVP, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/ummah-connect/v1/customerapp/events/{eventId}/purchase", publicMiddleware.SetRouteChain(handler.BuyTicket, customerSession.Verify)).Methods(http.MethodPost)
}

func (handler HTTPHandler) validate(ctx context.Context, payload interface{}) error {
	err := handler.Validate.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	errorFields := err.(validator.ValidationErrors)

	errMessages := make([]string, len(errorFields))

	for k, errorField := range errorFields {
		errMessages[k] = fmt.Sprintf("invalid '%s' with value '%v'", errorField.Field(), errorField.Value())
	}

	return fmt.Errorf("%s", strings.Join(errMessages, ", "))
}

func (handler HTTPHandler) GetManyEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.EventUseCase.GetManyEvent(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "list of events",
		Data:    resp,
	})
}

func (handler HTTPHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	eventID := mux.Vars(r)["eventId"]

	resp, err := handler.EventUseCase.GetEvent(ctx, eventID)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "event's detail",
		Data:    resp,
	})
}

func (handler HTTPHandler) GetManyUpcomingEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.EventUseCase.GetManyUpcomingEvent(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "list of upcoming events",
		Data:    resp,
	})
}

func (handler HTTPHandler) GetManyPastEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.EventUseCase.GetManyPastEvent(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "list of past events",
		Data:    resp,
	})
}

func (handler HTTPHandler) GetManyTrendingEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.EventUseCase.GetManyTrendingEvent(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "list of trending events",
		Data:    resp,
	})
}

func (handler HTTPHandler) GetTicketsSold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	eventID := mux.Vars(r)["eventId"]

	resp, err := handler.EventUseCase.GetTicketsSold(ctx, eventID)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "number of tickets sold",
		Data:    resp,
	})
}

func (handler HTTPHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := RSVPRequest{
		EventID: mux.Vars(r)["eventId"],
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.EventUseCase.RSVP(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "RSVP successful",
		Data:    resp,
	})
}

func (handler HTTPHandler) BuyTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := BuyTicketRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}
	req.EventID = mux.Vars(r)["eventId"]

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.EventUseCase.BuyTicket(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "ticket has been successfully purchased",
		Data:    resp,
	})
}

func (handler HTTPHandler) OnReminderEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e := ReminderEvent{}
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}

	if err := handler.EventUseCase.OnReminderEvent(ctx, e); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "event reminder has been processed",
	})
}

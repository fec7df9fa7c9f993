package event

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/Bidex-03/ummah-connect/internal/module/customerapp/ticket"
	internalMiddleware "github.com/Bidex-03/ummah-connect/internal/pkg/middleware"
	"github.com/Bidex-03/ummah-connect/pkg/response"
	"github.com/Bidex-03/ummah-connect/pkg/status"
	"github.com/Bidex-03/ummah-connect/pkg/validator"
)

func newTestRouter(f *useCaseFixture) *mux.Router {
	router := mux.NewRouter()
	InitHTTPHandler(router, internalMiddleware.NewCustomerSessionMiddleware(nil, nil), validator.Get(), f.useCase)

	return router
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.RESTEnvelope {
	t.Helper()

	var envelope response.RESTEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("response body is not a valid envelope: %v", err)
	}

	return envelope
}

func TestHTTPGetEvent(t *testing.T) {
	f := newUseCaseFixture(testEvent("EV1", time.Now().Add(24*time.Hour)))
	f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 100, Sold: 40}
	router := newTestRouter(f)

	t.Run("returns the event's detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ummah-connect/v1/customerapp/events/EV1", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Status != status.OK {
			t.Fatalf("unexpected status %s", envelope.Status)
		}
	})

	t.Run("returns not found for an unknown event", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ummah-connect/v1/customerapp/events/EV404", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Status != status.NOT_FOUND {
			t.Fatalf("unexpected status %s", envelope.Status)
		}
	})
}

func TestHTTPGetTicketsSold(t *testing.T) {
	f := newUseCaseFixture(testEvent("EV1", time.Now().Add(24*time.Hour)))
	f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 100, Sold: 40}
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ummah-connect/v1/customerapp/events/EV1/tickets-sold", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHTTPBuyTicket(t *testing.T) {
	f := newUseCaseFixture(testEvent("EV1", time.Now().Add(24*time.Hour)))
	f.ticketRepo.inventories["EV1"] = ticket.TicketInventory{EventID: "EV1", Allocation: 10, Sold: 9}

	handler := HTTPHandler{
		Validate:     validator.Get(),
		EventUseCase: f.useCase,
	}

	newPurchaseRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/ummah-connect/v1/customerapp/events/EV1/purchase", bytes.NewBufferString(body))
		req = req.WithContext(customerCtx(1))

		return mux.SetURLVars(req, map[string]string{"eventId": "EV1"})
	}

	t.Run("rejects a quantity below one", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.BuyTicket(rec, newPurchaseRequest(`{"quantity": 0}`))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.BuyTicket(rec, newPurchaseRequest(`{"quantity": `))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("purchases the last ticket", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.BuyTicket(rec, newPurchaseRequest(`{"quantity": 1}`))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	})

	t.Run("maps a sold out inventory to a conflict", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.BuyTicket(rec, newPurchaseRequest(`{"quantity": 1}`))

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		envelope := decodeEnvelope(t, rec)
		if envelope.Status != status.SOLD_OUT {
			t.Fatalf("unexpected status %s", envelope.Status)
		}
	})
}

package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Bidex-03/ummah-connect/pkg/status"
)

func TestDestruct(t *testing.T) {
	t.Run("returns the typed error as is", func(t *testing.T) {
		err := New(http.StatusConflict, status.SOLD_OUT, "not enough tickets available")

		ae := Destruct(err)
		if ae.HTTPStatusCode != http.StatusConflict {
			t.Fatalf("expected 409, got %d", ae.HTTPStatusCode)
		}
		if ae.Status != status.SOLD_OUT {
			t.Fatalf("expected status %s, got %s", status.SOLD_OUT, ae.Status)
		}
		if ae.Message != "not enough tickets available" {
			t.Fatalf("unexpected message %q", ae.Message)
		}
	})

	t.Run("unwraps a wrapped typed error", func(t *testing.T) {
		err := fmt.Errorf("buying ticket: %w", New(http.StatusNotFound, status.NOT_FOUND, "event is not found"))

		ae := Destruct(err)
		if ae.HTTPStatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", ae.HTTPStatusCode)
		}
	})

	t.Run("defaults untyped errors to an internal server error", func(t *testing.T) {
		err := goerrors.New("connection reset")

		ae := Destruct(err)
		if ae.HTTPStatusCode != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", ae.HTTPStatusCode)
		}
		if ae.Status != status.INTERNAL_SERVER_ERROR {
			t.Fatalf("unexpected status %s", ae.Status)
		}
		if ae.Message != "connection reset" {
			t.Fatalf("unexpected message %q", ae.Message)
		}
	})
}

package errors

import (
	goerrors "errors"
	"net/http"

	"github.com/Bidex-03/ummah-connect/pkg/status"
)

// ApplicationError carries the HTTP status code and the stable status
// category alongside the message, so handlers can translate any error
// coming out of a use case without switching on sentinel values.
type ApplicationError struct {
	HTTPStatusCode int
	Status         string
	Message        string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func New(httpStatusCode int, stat string, message string) error {
	return &ApplicationError{
		HTTPStatusCode: httpStatusCode,
		Status:         stat,
		Message:        message,
	}
}

// Destruct unwraps err into an ApplicationError, defaulting to an
// internal server error for anything untyped.
func Destruct(err error) *ApplicationError {
	var ae *ApplicationError
	if goerrors.As(err, &ae) {
		return ae
	}

	return &ApplicationError{
		HTTPStatusCode: http.StatusInternalServerError,
		Status:         status.INTERNAL_SERVER_ERROR,
		Message:        err.Error(),
	}
}

package event

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Bidex-03/ummah-connect/pkg/errors"
	"github.com/Bidex-03/ummah-connect/pkg/status"
)

type AttendeeRepository interface {
	DeleteByEventID(ctx context.Context, eventID string, tx *sql.Tx) error
}

type attendeeRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewAttendeeRepository(logger *logrus.Logger, db *sql.DB) AttendeeRepository {
	return &attendeeRepository{
		logger: logger,
		db:     db,
	}
}

// DeleteByEventID implements AttendeeRepository.
func (r *attendeeRepository) DeleteByEventID(ctx context.Context, eventID string, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		DELETE FROM event_attendee
		WHERE
			event_id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while removing bunch of attendee's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, eventID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while removing bunch of attendee's properties")
	}

	return nil
}

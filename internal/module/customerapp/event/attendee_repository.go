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
	AddIfAbsent(ctx context.Context, attendee Attendee, tx *sql.Tx) error
	FindManyByEventID(ctx context.Context, eventID string, tx *sql.Tx) ([]Attendee, error)
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

// AddIfAbsent implements AttendeeRepository. The insert and the membership
// check are one statement riding on the (event_id, customer_id) primary
// key, so concurrent duplicate RSVPs can never produce two rows; zero
// affected rows means the customer is already on the list.
func (r *attendeeRepository) AddIfAbsent(ctx context.Context, attendee Attendee, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO event_attendee
		(
			event_id, customer_id, customer_name, customer_email, created_at
		)
		VALUES
		(
			$1, $2, $3, $4, $5
		)
		ON CONFLICT (event_id, customer_id) DO NOTHING
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving attendee's properties")
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, attendee.EventID, attendee.CustomerID, attendee.CustomerName, attendee.CustomerEmail, attendee.CreatedAt)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving attendee's properties")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving attendee's properties")
	}

	if affected == 0 {
		return errors.New(http.StatusConflict, status.ALREADY_RSVPED, "already RSVPed to this event")
	}

	return nil
}

// FindManyByEventID implements AttendeeRepository.
func (r *attendeeRepository) FindManyByEventID(ctx context.Context, eventID string, tx *sql.Tx) ([]Attendee, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT
			event_id, customer_id, customer_name, customer_email, created_at
		FROM event_attendee
		WHERE
			event_id = $1
		ORDER BY created_at ASC
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of attendee's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, eventID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of attendee's properties")
	}

	defer rows.Close()

	var data = make([]Attendee, 0)
	for rows.Next() {
		var a Attendee
		err := rows.Scan(&a.EventID, &a.CustomerID, &a.CustomerName, &a.CustomerEmail, &a.CreatedAt)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of attendee's properties")
		}

		data = append(data, a)
	}

	return data, nil
}

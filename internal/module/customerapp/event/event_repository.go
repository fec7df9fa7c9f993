package event

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Bidex-03/ummah-connect/pkg/errors"
	"github.com/Bidex-03/ummah-connect/pkg/status"
)

type EventRepository interface {
	FindByID(ctx context.Context, ID string, tx *sql.Tx) (Event, error)
	FindMany(ctx context.Context, tx *sql.Tx) ([]Event, error)
	FindManyUpcoming(ctx context.Context, now time.Time, tx *sql.Tx) ([]Event, error)
	FindManyPast(ctx context.Context, now time.Time, tx *sql.Tx) ([]Event, error)
	FindManyTrending(ctx context.Context, tx *sql.Tx) ([]Event, error)
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type eventRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewEventRepository(logger *logrus.Logger, db *sql.DB) EventRepository {
	return &eventRepository{
		logger: logger,
		db:     db,
	}
}

const eventColumns = `
	id, title, subtitle, description, date, location,
	organizer_id, organizer_name, trending, photo, created_at, updated_at
`

func scanEvent(scan func(dest ...interface{}) error) (Event, error) {
	var data Event
	var subtitle sql.NullString
	var photo sql.NullString

	err := scan(
		&data.ID, &data.Title, &subtitle, &data.Description, &data.Date, &data.Location,
		&data.OrganizerID, &data.OrganizerName, &data.Trending, &photo, &data.CreatedAt, &data.UpdatedAt,
	)
	if err != nil {
		return Event{}, err
	}

	if subtitle.Valid {
		data.Subtitle = &subtitle.String
	}
	if photo.Valid {
		data.Photo = &photo.String
	}

	return data, nil
}

// FindByID implements EventRepository.
func (r *eventRepository) FindByID(ctx context.Context, ID string, tx *sql.Tx) (Event, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM event
		WHERE
			id = $1
		LIMIT 1
	`, eventColumns)

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Event{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting event's properties")
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, ID)

	data, err := scanEvent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return Event{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("event with id '%s' is not found", ID))
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return Event{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting event's properties")
	}

	return data, nil
}

func (r *eventRepository) findManyWhere(ctx context.Context, cmd sqlCommand, condition string, args ...interface{}) ([]Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM event
		%s
		ORDER BY date ASC
	`, eventColumns, condition)

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of event's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of event's properties")
	}

	defer rows.Close()

	var data = make([]Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of event's properties")
		}

		data = append(data, e)
	}

	return data, nil
}

// FindMany implements EventRepository.
func (r *eventRepository) FindMany(ctx context.Context, tx *sql.Tx) ([]Event, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	return r.findManyWhere(ctx, cmd, "")
}

// FindManyUpcoming implements EventRepository. The boundary is strict so
// that together with FindManyPast it partitions all events.
func (r *eventRepository) FindManyUpcoming(ctx context.Context, now time.Time, tx *sql.Tx) ([]Event, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	return r.findManyWhere(ctx, cmd, "WHERE date > $1", now)
}

// FindManyPast implements EventRepository.
func (r *eventRepository) FindManyPast(ctx context.Context, now time.Time, tx *sql.Tx) ([]Event, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	return r.findManyWhere(ctx, cmd, "WHERE date <= $1", now)
}

// FindManyTrending implements EventRepository.
func (r *eventRepository) FindManyTrending(ctx context.Context, tx *sql.Tx) ([]Event, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	return r.findManyWhere(ctx, cmd, "WHERE trending = TRUE")
}

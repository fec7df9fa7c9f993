package ticket

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

type TicketInventoryRepository interface {
	FindByEventID(ctx context.Context, eventID string, tx *sql.Tx) (TicketInventory, error)
	IncrementSoldIfAvailable(ctx context.Context, eventID string, quantity int64, tx *sql.Tx) error
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type ticketInventoryRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewTicketInventoryRepository(logger *logrus.Logger, db *sql.DB) TicketInventoryRepository {
	return &ticketInventoryRepository{
		logger: logger,
		db:     db,
	}
}

// FindByEventID implements TicketInventoryRepository.
func (r *ticketInventoryRepository) FindByEventID(ctx context.Context, eventID string, tx *sql.Tx) (TicketInventory, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT
			event_id, allocation, sold, last_stock_update
		FROM ticket_inventory
		WHERE
			event_id = $1
		LIMIT 1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return TicketInventory{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting ticket inventory's properties")
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, eventID)

	var data TicketInventory
	err = row.Scan(&data.EventID, &data.Allocation, &data.Sold, &data.LastStockUpdate)
	if err != nil {
		if err == sql.ErrNoRows {
			return TicketInventory{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("ticket inventory for event with id '%s' is not found", eventID))
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return TicketInventory{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting ticket inventory's properties")
	}

	return data, nil
}

// IncrementSoldIfAvailable implements TicketInventoryRepository. The check
// and the increment are a single conditional update, so concurrent
// purchases against the same event can never jointly exceed the allocation;
// zero affected rows means the requested quantity no longer fits.
func (r *ticketInventoryRepository) IncrementSoldIfAvailable(ctx context.Context, eventID string, quantity int64, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		UPDATE ticket_inventory
		SET
			sold = sold + $1,
			last_stock_update = $2
		WHERE
			event_id = $3
			AND sold + $1 <= allocation
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating ticket inventory's properties")
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, quantity, time.Now(), eventID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating ticket inventory's properties")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while updating ticket inventory's properties")
	}

	if affected == 0 {
		return errors.New(http.StatusConflict, status.SOLD_OUT, "not enough tickets available")
	}

	return nil
}

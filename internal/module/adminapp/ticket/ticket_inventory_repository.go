package ticket

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Bidex-03/ummah-connect/pkg/errors"
	"github.com/Bidex-03/ummah-connect/pkg/status"
)

type TicketInventoryRepository interface {
	Save(ctx context.Context, ti TicketInventory, tx *sql.Tx) error
	FindByEventID(ctx context.Context, eventID string, tx *sql.Tx) (TicketInventory, error)
	DeleteByEventID(ctx context.Context, eventID string, tx *sql.Tx) error
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

// Save implements TicketInventoryRepository.
func (r *ticketInventoryRepository) Save(ctx context.Context, ti TicketInventory, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO ticket_inventory
		(
			event_id, allocation, sold, last_stock_update
		)
		VALUES
		(
			$1, $2, $3, $4
		)
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving ticket inventory's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, ti.EventID, ti.Allocation, ti.Sold, ti.LastStockUpdate)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving ticket inventory's properties")
	}

	return nil
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

// DeleteByEventID implements TicketInventoryRepository.
func (r *ticketInventoryRepository) DeleteByEventID(ctx context.Context, eventID string, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		DELETE FROM ticket_inventory
		WHERE
			event_id = $1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while removing ticket inventory's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, eventID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while removing ticket inventory's properties")
	}

	return nil
}

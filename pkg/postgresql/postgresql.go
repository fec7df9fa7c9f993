package postgresql

import (
	"database/sql"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Bidex-03/ummah-connect/config"
	"github.com/Bidex-03/ummah-connect/pkg/applogger"
)

var (
	db   *sql.DB
	once sync.Once
)

// GetDatabase returns the shared postgres handle, opening it on first use.
func GetDatabase() *sql.DB {
	once.Do(func() {
		c := config.Get()

		var err error
		db, err = sql.Open("pgx", c.PostgreSQL.DSN)
		if err != nil {
			applogger.GetLogrus().WithError(err).Fatal("unable to open postgresql connection")
		}

		db.SetMaxOpenConns(c.PostgreSQL.MaxOpenConns)
		db.SetMaxIdleConns(c.PostgreSQL.MaxIdleConns)
		db.SetConnMaxLifetime(c.PostgreSQL.ConnMaxLifetime)
	})

	return db
}

package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// NewPostgresDB opens a connection pool against connStr, retrying while the
// database container is still coming up.
func NewPostgresDB(connStr string, logger zerolog.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error
	maxRetries := 10

	for i := 1; i <= maxRetries; i++ {
		logger.Info().Int("attempt", i).Int("max", maxRetries).Msg("connecting to database")
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}

		if err == nil {
			logger.Info().Msg("database connected")
			return db, nil
		}

		logger.Warn().Err(err).Msg("database not ready, waiting 2 seconds")
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("connect to database: %w", err)
}

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
)

// Connect opens the PostgreSQL pool holding the restaurant catalog. The
// catalog is read in full on every reload, so a handful of connections is
// plenty and none are kept idle between reloads.
func Connect(connStr string) (*sql.DB, error) {
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		slog.Warn("database ping failed, proceeding carefully", slog.Any("error", err))
	}

	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(4)

	slog.Info("connected to PostgreSQL")
	return db, nil
}

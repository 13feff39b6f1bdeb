package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	_ "github.com/mattn/go-sqlite3"    // sqlite driver

	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
)

// DB wraps the shared sql handle with the logical driver name so query
// builders can pick the right placeholder style.
type DB struct {
	*sql.DB
	Driver string
}

// Connect opens the configured database and verifies it with a short ping,
// retrying briefly so the server survives a database that is still booting.
func Connect(cfg *config.Config) (*DB, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database driver: %w", err)
	}
	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database dsn: %w", err)
	}

	driverName := driver
	if driver == "postgres" {
		driverName = "pgx"
	}
	rawDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	if driver == "sqlite3" {
		rawDB.SetMaxOpenConns(1)
		rawDB.SetMaxIdleConns(1)
	} else {
		rawDB.SetMaxOpenConns(10)
	}

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return rawDB.PingContext(ctx)
	}
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4)
	if err := backoff.Retry(ping, policy); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	if driver == "sqlite3" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := rawDB.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			rawDB.Close()
			return nil, nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}

	db := &DB{DB: rawDB, Driver: driver}
	return db, func() { _ = rawDB.Close() }, nil
}

package rdb

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/martijn/userservice/pkg/config"
	_ "modernc.org/sqlite"
)

// database/sql driver names registered by the imported drivers
const (
	sqliteDriver   = "sqlite"
	postgresDriver = "pgx"
	mysqlDriver    = "mysql"
)

var schemas = map[string]string{
	sqliteDriver: `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	age INTEGER
);`,
	postgresDriver: `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	age BIGINT
);`,
	mysqlDriver: `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name TEXT NOT NULL,
	age INT UNSIGNED
);`,
}

type DB struct {
	*sqlx.DB
}

// Open connects to the relational store selected by cfg.Storage.Driver,
// sizes the pool and makes sure the users table exists.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	driverName, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	connectCtx := ctx
	if cfg.Database.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()
	}

	db, err := sqlx.ConnectContext(connectCtx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	configurePool(db, cfg)

	if driverName == sqliteDriver {
		if err := applySQLitePragmas(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	// Create tables
	if _, err := db.ExecContext(ctx, schemas[driverName]); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db}, nil
}

// OpenSQLite is a shorthand used by the CLI and tests.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	return Open(ctx, &config.Config{
		Storage: config.Storage{
			Driver:     config.DriverSQLite,
			SQLitePath: path,
		},
		Database: config.Database{
			MaxOpenConns:    config.DefaultMaxOpenConns,
			MaxIdleConns:    config.DefaultMaxIdleConns,
			ConnMaxLifetime: config.DefaultConnMaxLifetime,
			ConnMaxIdleTime: config.DefaultConnMaxIdleTime,
		},
	})
}

func configurePool(db *sqlx.DB, cfg *config.Config) {
	// Every connection to an in-memory sqlite database sees its own database
	if cfg.Storage.Driver == config.DriverSQLite && cfg.Storage.SQLitePath == ":memory:" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
		return
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)
}

func applySQLitePragmas(ctx context.Context, db *sqlx.DB) error {
	// Enable WAL mode for better concurrency (allows concurrent reads/writes)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set busy timeout to handle concurrent writers
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

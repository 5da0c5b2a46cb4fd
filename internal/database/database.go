package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kagretirement/registry/api/internal/config"
	"github.com/kagretirement/registry/api/internal/logger"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Database wraps the SQL handle of the configured backend.
// Pool is only set for PostgreSQL.
type Database struct {
	SQL     *sql.DB
	Pool    *pgxpool.Pool
	Dialect Dialect
	log     *logger.Logger
}

// Open connects to the backend selected by cfg.URL.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*Database, error) {
	switch {
	case config.IsPostgresURL(cfg.URL):
		return NewPostgres(ctx, cfg, log)
	case config.IsSQLiteURL(cfg.URL):
		return NewSQLite(ctx, config.SQLitePath(cfg.URL), log)
	default:
		return nil, fmt.Errorf("unsupported database url scheme: %s", cfg.URL)
	}
}

// WithTx runs fn inside a single transaction. The transaction is committed
// when fn returns nil and rolled back otherwise, so a failed fn leaves no
// partial writes behind.
func (db *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && db.log != nil {
			db.log.Error("Failed to rollback transaction", rbErr, map[string]interface{}{
				"dialect": db.Dialect.String(),
			})
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Ping checks if the database connection is alive.
func (db *Database) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}

// Close releases the SQL handle and, for PostgreSQL, the pgx pool behind it.
func (db *Database) Close() {
	if db.SQL != nil {
		if err := db.SQL.Close(); err != nil && db.log != nil {
			db.log.Error("Failed to close database", err, nil)
		}
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Stats returns statistics about the pgx connection pool.
// It returns nil for backends without a pool.
func (db *Database) Stats() *pgxpool.Stat {
	if db.Pool == nil {
		return nil
	}
	return db.Pool.Stat()
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/kagretirement/registry/api/internal/logger"
)

// Transactions take the write lock at BEGIN and wait on contention instead of
// failing with SQLITE_BUSY. Timestamps are stored as sortable text.
const sqliteOptions = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite&_txlock=immediate"

// NewSQLite opens (creating if needed) the SQLite database file at path.
func NewSQLite(ctx context.Context, path string, log *logger.Logger) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?%s", path, sqliteOptions))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL allows concurrent readers; writers are serialized by the
	// immediate transaction lock.
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)

	if log != nil {
		log.Debug("SQLite database opened", map[string]interface{}{
			"path": path,
		})
	}

	return &Database{
		SQL:     conn,
		Dialect: SQLite,
		log:     log,
	}, nil
}

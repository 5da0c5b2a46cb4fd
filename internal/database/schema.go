package database

import (
	"context"
	"fmt"
)

// EnsureSchema creates the registry tables and indexes when missing.
// Section and pastor parent ids are plain columns without foreign keys:
// parents may be deleted while children remain.
func (db *Database) EnsureSchema(ctx context.Context) error {
	ts := db.Dialect.timestampType()

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS districts (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			section_count INTEGER NOT NULL DEFAULT 0,
			created_at %s NOT NULL
		)`, ts),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sections (
			id VARCHAR(36) PRIMARY KEY,
			district_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			church_count INTEGER NOT NULL DEFAULT 0,
			created_at %s NOT NULL
		)`, ts),
		`CREATE INDEX IF NOT EXISTS idx_sections_district_id ON sections (district_id)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS pastors (
			id VARCHAR(36) PRIMARY KEY,
			section_id VARCHAR(36) NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			pastor_id VARCHAR(32) NOT NULL UNIQUE,
			gender VARCHAR(12),
			current_position VARCHAR(255),
			id_no VARCHAR(64),
			dob VARCHAR(32),
			age INTEGER,
			start_of_service VARCHAR(32),
			projected_retirement_date VARCHAR(32),
			remaining_tenure INTEGER,
			created_at %s NOT NULL
		)`, ts),
		`CREATE INDEX IF NOT EXISTS idx_pastors_section_id ON pastors (section_id)`,
	}

	for i, stmt := range statements {
		if _, err := db.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	if db.log != nil {
		db.log.Info("Database schema ensured", map[string]interface{}{
			"dialect": db.Dialect.String(),
		})
	}
	return nil
}

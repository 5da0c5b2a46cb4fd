package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kagretirement/registry/api/internal/database"
	"github.com/kagretirement/registry/api/internal/models"
)

// DistrictRepository defines the data access operations for districts.
type DistrictRepository interface {
	// List returns every district, newest first. Never nil.
	List(ctx context.Context) ([]models.District, error)

	// FindByID returns nil, nil when no district has the id.
	FindByID(ctx context.Context, id string) (*models.District, error)

	// FindByIDForUpdate is FindByID that also locks the row until the
	// surrounding transaction ends. Only meaningful inside Store.WithTx.
	FindByIDForUpdate(ctx context.Context, id string) (*models.District, error)

	// Create inserts d. Returns ErrDuplicate when the name is taken.
	Create(ctx context.Context, d *models.District) error

	// Update writes d's name and section count. Returns ErrDuplicate when
	// the new name is taken.
	Update(ctx context.Context, d *models.District) error

	// SetSectionCount overwrites the cached section count.
	SetSectionCount(ctx context.Context, id string, count int) error

	// Delete removes the district. Returns false when nothing was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}

// districtRepository is the concrete implementation of DistrictRepository.
type districtRepository struct {
	q       database.DBTX
	dialect database.Dialect
}

const districtColumns = `id, name, section_count, created_at`

func (r *districtRepository) List(ctx context.Context) ([]models.District, error) {
	query := `SELECT ` + districtColumns + ` FROM districts ORDER BY created_at DESC, id DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	defer rows.Close()

	districts := []models.District{}
	for rows.Next() {
		var d models.District
		if err := rows.Scan(&d.ID, &d.Name, &d.SectionCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan district row: %w", err)
		}
		districts = append(districts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating district rows: %w", err)
	}

	return districts, nil
}

func (r *districtRepository) FindByID(ctx context.Context, id string) (*models.District, error) {
	return r.findByID(ctx, id, "")
}

func (r *districtRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.District, error) {
	return r.findByID(ctx, id, r.dialect.ForUpdate())
}

func (r *districtRepository) findByID(ctx context.Context, id, suffix string) (*models.District, error) {
	query := r.dialect.Rebind(`SELECT ` + districtColumns + ` FROM districts WHERE id = ?` + suffix)

	var d models.District
	err := r.q.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.SectionCount, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query district %s: %w", id, err)
	}

	return &d, nil
}

func (r *districtRepository) Create(ctx context.Context, d *models.District) error {
	query := r.dialect.Rebind(`INSERT INTO districts (` + districtColumns + `) VALUES (?, ?, ?, ?)`)

	if _, err := r.q.ExecContext(ctx, query, d.ID, d.Name, d.SectionCount, d.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: district name %q", ErrDuplicate, d.Name)
		}
		return fmt.Errorf("failed to insert district: %w", err)
	}
	return nil
}

func (r *districtRepository) Update(ctx context.Context, d *models.District) error {
	query := r.dialect.Rebind(`UPDATE districts SET name = ?, section_count = ? WHERE id = ?`)

	if _, err := r.q.ExecContext(ctx, query, d.Name, d.SectionCount, d.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: district name %q", ErrDuplicate, d.Name)
		}
		return fmt.Errorf("failed to update district %s: %w", d.ID, err)
	}
	return nil
}

func (r *districtRepository) SetSectionCount(ctx context.Context, id string, count int) error {
	query := r.dialect.Rebind(`UPDATE districts SET section_count = ? WHERE id = ?`)

	if _, err := r.q.ExecContext(ctx, query, count, id); err != nil {
		return fmt.Errorf("failed to set section count for district %s: %w", id, err)
	}
	return nil
}

func (r *districtRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.q, r.dialect, "districts", id)
}

// deleteByID removes the row with id from table and reports whether a row
// was removed.
func deleteByID(ctx context.Context, q database.DBTX, dialect database.Dialect, table, id string) (bool, error) {
	res, err := q.ExecContext(ctx, dialect.Rebind(`DELETE FROM `+table+` WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for %s: %w", table, err)
	}
	return n > 0, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kagretirement/registry/api/internal/database"
	"github.com/kagretirement/registry/api/internal/models"
)

// SectionRepository defines the data access operations for sections.
type SectionRepository interface {
	// ListByDistrict returns the district's sections, newest first. Never nil.
	ListByDistrict(ctx context.Context, districtID string) ([]models.Section, error)

	// FindByID returns nil, nil when no section has the id.
	FindByID(ctx context.Context, id string) (*models.Section, error)

	// FindByIDForUpdate is FindByID that also locks the row until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*models.Section, error)

	// CountByDistrict returns how many sections reference districtID.
	CountByDistrict(ctx context.Context, districtID string) (int, error)

	Create(ctx context.Context, s *models.Section) error

	// Update writes s's name and church count.
	Update(ctx context.Context, s *models.Section) error

	// Delete removes the section. Returns false when nothing was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}

// sectionRepository is the concrete implementation of SectionRepository.
type sectionRepository struct {
	q       database.DBTX
	dialect database.Dialect
}

const sectionColumns = `id, district_id, name, church_count, created_at`

func (r *sectionRepository) ListByDistrict(ctx context.Context, districtID string) ([]models.Section, error) {
	query := r.dialect.Rebind(`SELECT ` + sectionColumns + ` FROM sections
		WHERE district_id = ?
		ORDER BY created_at DESC, id DESC`)

	rows, err := r.q.QueryContext(ctx, query, districtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections for district %s: %w", districtID, err)
	}
	defer rows.Close()

	sections := []models.Section{}
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.DistrictID, &s.Name, &s.ChurchCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section row: %w", err)
		}
		sections = append(sections, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating section rows: %w", err)
	}

	return sections, nil
}

func (r *sectionRepository) FindByID(ctx context.Context, id string) (*models.Section, error) {
	return r.findByID(ctx, id, "")
}

func (r *sectionRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Section, error) {
	return r.findByID(ctx, id, r.dialect.ForUpdate())
}

func (r *sectionRepository) findByID(ctx context.Context, id, suffix string) (*models.Section, error) {
	query := r.dialect.Rebind(`SELECT ` + sectionColumns + ` FROM sections WHERE id = ?` + suffix)

	var s models.Section
	err := r.q.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.DistrictID, &s.Name, &s.ChurchCount, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query section %s: %w", id, err)
	}

	return &s, nil
}

func (r *sectionRepository) CountByDistrict(ctx context.Context, districtID string) (int, error) {
	query := r.dialect.Rebind(`SELECT COUNT(*) FROM sections WHERE district_id = ?`)

	var count int
	if err := r.q.QueryRowContext(ctx, query, districtID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sections for district %s: %w", districtID, err)
	}
	return count, nil
}

func (r *sectionRepository) Create(ctx context.Context, s *models.Section) error {
	query := r.dialect.Rebind(`INSERT INTO sections (` + sectionColumns + `) VALUES (?, ?, ?, ?, ?)`)

	if _, err := r.q.ExecContext(ctx, query, s.ID, s.DistrictID, s.Name, s.ChurchCount, s.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: section id %q", ErrDuplicate, s.ID)
		}
		return fmt.Errorf("failed to insert section: %w", err)
	}
	return nil
}

func (r *sectionRepository) Update(ctx context.Context, s *models.Section) error {
	query := r.dialect.Rebind(`UPDATE sections SET name = ?, church_count = ? WHERE id = ?`)

	if _, err := r.q.ExecContext(ctx, query, s.Name, s.ChurchCount, s.ID); err != nil {
		return fmt.Errorf("failed to update section %s: %w", s.ID, err)
	}
	return nil
}

func (r *sectionRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.q, r.dialect, "sections", id)
}

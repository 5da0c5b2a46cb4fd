package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kagretirement/registry/api/internal/database"
	"github.com/kagretirement/registry/api/internal/models"
)

// PastorRepository defines the data access operations for pastors.
type PastorRepository interface {
	// ListBySection returns the section's pastors, newest first. Never nil.
	ListBySection(ctx context.Context, sectionID string) ([]models.Pastor, error)

	// FindByID returns nil, nil when no pastor has the id.
	FindByID(ctx context.Context, id string) (*models.Pastor, error)

	// FindByIDForUpdate is FindByID that also locks the row until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*models.Pastor, error)

	// Create inserts p. Returns ErrDuplicate when p.PastorID is taken
	// anywhere in the registry.
	Create(ctx context.Context, p *models.Pastor) error

	// Update writes every mutable column of p. SectionID and PastorID are
	// left untouched.
	Update(ctx context.Context, p *models.Pastor) error

	// Delete removes the pastor. Returns false when nothing was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}

// pastorRepository is the concrete implementation of PastorRepository.
type pastorRepository struct {
	q       database.DBTX
	dialect database.Dialect
}

const pastorColumns = `id, section_id, full_name, pastor_id, gender, current_position, id_no, dob,
	age, start_of_service, projected_retirement_date, remaining_tenure, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPastor(row rowScanner, p *models.Pastor) error {
	return row.Scan(
		&p.ID,
		&p.SectionID,
		&p.FullName,
		&p.PastorID,
		&p.Gender,
		&p.CurrentPosition,
		&p.IDNo,
		&p.DateOfBirth,
		&p.Age,
		&p.StartOfService,
		&p.ProjectedRetirementDate,
		&p.RemainingTenure,
		&p.CreatedAt,
	)
}

func (r *pastorRepository) ListBySection(ctx context.Context, sectionID string) ([]models.Pastor, error) {
	query := r.dialect.Rebind(`SELECT ` + pastorColumns + ` FROM pastors
		WHERE section_id = ?
		ORDER BY created_at DESC, id DESC`)

	rows, err := r.q.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pastors for section %s: %w", sectionID, err)
	}
	defer rows.Close()

	pastors := []models.Pastor{}
	for rows.Next() {
		var p models.Pastor
		if err := scanPastor(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan pastor row: %w", err)
		}
		pastors = append(pastors, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pastor rows: %w", err)
	}

	return pastors, nil
}

func (r *pastorRepository) FindByID(ctx context.Context, id string) (*models.Pastor, error) {
	return r.findByID(ctx, id, "")
}

func (r *pastorRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Pastor, error) {
	return r.findByID(ctx, id, r.dialect.ForUpdate())
}

func (r *pastorRepository) findByID(ctx context.Context, id, suffix string) (*models.Pastor, error) {
	query := r.dialect.Rebind(`SELECT ` + pastorColumns + ` FROM pastors WHERE id = ?` + suffix)

	var p models.Pastor
	if err := scanPastor(r.q.QueryRowContext(ctx, query, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query pastor %s: %w", id, err)
	}

	return &p, nil
}

func (r *pastorRepository) Create(ctx context.Context, p *models.Pastor) error {
	query := r.dialect.Rebind(`INSERT INTO pastors (` + pastorColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.q.ExecContext(ctx, query,
		p.ID,
		p.SectionID,
		p.FullName,
		p.PastorID,
		p.Gender,
		p.CurrentPosition,
		p.IDNo,
		p.DateOfBirth,
		p.Age,
		p.StartOfService,
		p.ProjectedRetirementDate,
		p.RemainingTenure,
		p.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: pastorId %q", ErrDuplicate, p.PastorID)
		}
		return fmt.Errorf("failed to insert pastor: %w", err)
	}
	return nil
}

func (r *pastorRepository) Update(ctx context.Context, p *models.Pastor) error {
	query := r.dialect.Rebind(`UPDATE pastors SET
		full_name = ?,
		gender = ?,
		current_position = ?,
		id_no = ?,
		dob = ?,
		age = ?,
		start_of_service = ?,
		projected_retirement_date = ?,
		remaining_tenure = ?
		WHERE id = ?`)

	_, err := r.q.ExecContext(ctx, query,
		p.FullName,
		p.Gender,
		p.CurrentPosition,
		p.IDNo,
		p.DateOfBirth,
		p.Age,
		p.StartOfService,
		p.ProjectedRetirementDate,
		p.RemainingTenure,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pastor %s: %w", p.ID, err)
	}
	return nil
}

func (r *pastorRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.q, r.dialect, "pastors", id)
}

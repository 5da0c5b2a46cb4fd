package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kagretirement/registry/api/internal/logger"
	"github.com/kagretirement/registry/api/internal/models"
	"github.com/kagretirement/registry/api/internal/repository"
)

const entityDistrict = "district"

// CreateDistrictInput carries the fields accepted when creating a district.
type CreateDistrictInput struct {
	Name string
	// SectionCount seeds the cached count; absent or falsy means 0.
	SectionCount models.LooseInt
}

// UpdateDistrictInput carries a partial district update.
type UpdateDistrictInput struct {
	Name models.Optional[string]
	// SectionCountOverride replaces the cached section count verbatim. It is
	// an administrative escape hatch: the value is trusted as given and stays
	// until the next section create or delete under the district recomputes it.
	SectionCountOverride models.LooseInt
}

// DistrictService defines the district manager operations.
type DistrictService interface {
	// ListDistricts returns every district, newest first.
	ListDistricts(ctx context.Context) ([]models.District, error)

	// GetDistrict returns a *NotFoundError when id is unknown.
	GetDistrict(ctx context.Context, id string) (*models.District, error)

	// CreateDistrict returns a *ValidationError for a blank name and a
	// *ConflictError when the name is already taken.
	CreateDistrict(ctx context.Context, in CreateDistrictInput) (*models.District, error)

	// UpdateDistrict applies the fields present in in. Errors as CreateDistrict,
	// plus *NotFoundError.
	UpdateDistrict(ctx context.Context, id string, in UpdateDistrictInput) (*models.District, error)

	// DeleteDistrict removes the district. Its sections are left in place.
	DeleteDistrict(ctx context.Context, id string) error
}

// districtService is the concrete implementation of DistrictService.
type districtService struct {
	store repository.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewDistrictService creates a new instance of DistrictService.
func NewDistrictService(store repository.Store, log *logger.Logger) DistrictService {
	return &districtService{
		store: store,
		log:   log,
		now:   utcNow,
	}
}

func (s *districtService) ListDistricts(ctx context.Context) ([]models.District, error) {
	districts, err := s.store.Districts().List(ctx)
	if err != nil {
		s.log.Error("Failed to list districts", err, nil)
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}
	return districts, nil
}

func (s *districtService) GetDistrict(ctx context.Context, id string) (*models.District, error) {
	district, err := s.store.Districts().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get district: %w", err)
	}
	if district == nil {
		return nil, &NotFoundError{Entity: entityDistrict, ID: id}
	}
	return district, nil
}

func (s *districtService) CreateDistrict(ctx context.Context, in CreateDistrictInput) (*models.District, error) {
	name := strings.TrimSpace(in.Name)

	errs := fieldErrors{}
	errs.check("name", name, ruleName)
	errs.check("sectionCount", in.SectionCount.OrZero(), ruleCount)
	if err := errs.err(); err != nil {
		s.log.Warn("Invalid district input", map[string]interface{}{
			"fields": errs,
		})
		return nil, err
	}

	district := &models.District{
		ID:           uuid.NewString(),
		Name:         name,
		SectionCount: in.SectionCount.OrZero(),
		CreatedAt:    s.now(),
	}

	if err := s.store.Districts().Create(ctx, district); err != nil {
		return nil, s.writeError("create", district, err)
	}

	s.log.Info("District created", map[string]interface{}{
		"district_id": district.ID,
		"name":        district.Name,
	})
	return district, nil
}

func (s *districtService) UpdateDistrict(ctx context.Context, id string, in UpdateDistrictInput) (*models.District, error) {
	var name string
	errs := fieldErrors{}
	if in.Name.Set {
		name = trimmed(in.Name.Value)
		errs.check("name", name, ruleName)
	}
	if in.SectionCountOverride.Set {
		errs.check("sectionCount", in.SectionCountOverride.OrZero(), ruleCount)
	}

	var district *models.District
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		current, err := tx.Districts().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &NotFoundError{Entity: entityDistrict, ID: id}
		}
		if err := errs.err(); err != nil {
			return err
		}

		if in.Name.Set {
			current.Name = name
		}
		if in.SectionCountOverride.Set {
			override := in.SectionCountOverride.OrZero()
			s.log.Warn("District section count overridden manually", map[string]interface{}{
				"district_id": id,
				"previous":    current.SectionCount,
				"override":    override,
			})
			current.SectionCount = override
		}

		if err := tx.Districts().Update(ctx, current); err != nil {
			return err
		}
		district = current
		return nil
	})
	if err != nil {
		var nf *NotFoundError
		var ve *ValidationError
		if errors.As(err, &nf) || errors.As(err, &ve) {
			return nil, err
		}
		return nil, s.writeError("update", &models.District{ID: id, Name: name}, err)
	}

	s.log.Info("District updated", map[string]interface{}{
		"district_id": district.ID,
	})
	return district, nil
}

func (s *districtService) DeleteDistrict(ctx context.Context, id string) error {
	deleted, err := s.store.Districts().Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete district", err, map[string]interface{}{
			"district_id": id,
		})
		return fmt.Errorf("failed to delete district: %w", err)
	}
	if !deleted {
		return &NotFoundError{Entity: entityDistrict, ID: id}
	}

	s.log.Info("District deleted", map[string]interface{}{
		"district_id": id,
	})
	return nil
}

// writeError turns a repository write failure into a service error.
func (s *districtService) writeError(op string, d *models.District, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		s.log.Warn("District name conflict", map[string]interface{}{
			"op":   op,
			"name": d.Name,
		})
		return &ConflictError{Message: "district name exists", Err: err}
	}

	s.log.Error("Failed to "+op+" district", err, map[string]interface{}{
		"district_id": d.ID,
	})
	return fmt.Errorf("failed to %s district: %w", op, err)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

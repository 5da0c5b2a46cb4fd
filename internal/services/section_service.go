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

const entitySection = "section"

// CreateSectionInput carries the fields accepted when creating a section.
type CreateSectionInput struct {
	Name        string
	ChurchCount models.LooseInt
}

// UpdateSectionInput carries a partial section update.
type UpdateSectionInput struct {
	Name        models.Optional[string]
	ChurchCount models.LooseInt
}

// SectionService defines the section manager operations. Creating or
// deleting a section rewrites the parent district's section count in the
// same transaction.
type SectionService interface {
	// ListSections returns the district's sections, newest first. An unknown
	// district yields an empty list.
	ListSections(ctx context.Context, districtID string) ([]models.Section, error)

	// GetSection returns a *NotFoundError when id is unknown.
	GetSection(ctx context.Context, id string) (*models.Section, error)

	// CreateSection does not require the district to exist.
	CreateSection(ctx context.Context, districtID string, in CreateSectionInput) (*models.Section, error)

	// UpdateSection changes name and church count only.
	UpdateSection(ctx context.Context, id string, in UpdateSectionInput) (*models.Section, error)

	// DeleteSection leaves the section's pastors in place.
	DeleteSection(ctx context.Context, id string) error
}

// sectionService is the concrete implementation of SectionService.
type sectionService struct {
	store repository.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewSectionService creates a new instance of SectionService.
func NewSectionService(store repository.Store, log *logger.Logger) SectionService {
	return &sectionService{
		store: store,
		log:   log,
		now:   utcNow,
	}
}

func (s *sectionService) ListSections(ctx context.Context, districtID string) ([]models.Section, error) {
	sections, err := s.store.Sections().ListByDistrict(ctx, districtID)
	if err != nil {
		s.log.Error("Failed to list sections", err, map[string]interface{}{
			"district_id": districtID,
		})
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

func (s *sectionService) GetSection(ctx context.Context, id string) (*models.Section, error) {
	section, err := s.store.Sections().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	if section == nil {
		return nil, &NotFoundError{Entity: entitySection, ID: id}
	}
	return section, nil
}

func (s *sectionService) CreateSection(ctx context.Context, districtID string, in CreateSectionInput) (*models.Section, error) {
	name := strings.TrimSpace(in.Name)

	errs := fieldErrors{}
	errs.check("name", name, ruleName)
	errs.check("churchCount", in.ChurchCount.OrZero(), ruleCount)
	if err := errs.err(); err != nil {
		s.log.Warn("Invalid section input", map[string]interface{}{
			"district_id": districtID,
			"fields":      errs,
		})
		return nil, err
	}

	section := &models.Section{
		ID:          uuid.NewString(),
		DistrictID:  districtID,
		Name:        name,
		ChurchCount: in.ChurchCount.OrZero(),
		CreatedAt:   s.now(),
	}

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		return s.recountSections(ctx, tx, districtID, func() error {
			return tx.Sections().Create(ctx, section)
		})
	})
	if err != nil {
		s.log.Error("Failed to create section", err, map[string]interface{}{
			"district_id": districtID,
		})
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	s.log.Info("Section created", map[string]interface{}{
		"section_id":  section.ID,
		"district_id": districtID,
	})
	return section, nil
}

func (s *sectionService) UpdateSection(ctx context.Context, id string, in UpdateSectionInput) (*models.Section, error) {
	var name string
	errs := fieldErrors{}
	if in.Name.Set {
		name = trimmed(in.Name.Value)
		errs.check("name", name, ruleName)
	}
	if in.ChurchCount.Set {
		errs.check("churchCount", in.ChurchCount.OrZero(), ruleCount)
	}

	var section *models.Section
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		current, err := tx.Sections().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &NotFoundError{Entity: entitySection, ID: id}
		}
		if err := errs.err(); err != nil {
			return err
		}

		if in.Name.Set {
			current.Name = name
		}
		if in.ChurchCount.Set {
			current.ChurchCount = in.ChurchCount.OrZero()
		}

		if err := tx.Sections().Update(ctx, current); err != nil {
			return err
		}
		section = current
		return nil
	})
	if err != nil {
		var nf *NotFoundError
		var ve *ValidationError
		if errors.As(err, &nf) || errors.As(err, &ve) {
			return nil, err
		}
		s.log.Error("Failed to update section", err, map[string]interface{}{
			"section_id": id,
		})
		return nil, fmt.Errorf("failed to update section: %w", err)
	}

	s.log.Info("Section updated", map[string]interface{}{
		"section_id": id,
	})
	return section, nil
}

func (s *sectionService) DeleteSection(ctx context.Context, id string) error {
	var districtID string
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		section, err := tx.Sections().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if section == nil {
			return &NotFoundError{Entity: entitySection, ID: id}
		}
		districtID = section.DistrictID

		return s.recountSections(ctx, tx, districtID, func() error {
			deleted, err := tx.Sections().Delete(ctx, id)
			if err != nil {
				return err
			}
			if !deleted {
				return &NotFoundError{Entity: entitySection, ID: id}
			}
			return nil
		})
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return err
		}
		s.log.Error("Failed to delete section", err, map[string]interface{}{
			"section_id": id,
		})
		return fmt.Errorf("failed to delete section: %w", err)
	}

	s.log.Info("Section deleted", map[string]interface{}{
		"section_id":  id,
		"district_id": districtID,
	})
	return nil
}

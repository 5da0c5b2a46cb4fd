package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kagretirement/registry/api/internal/logger"
	"github.com/kagretirement/registry/api/internal/models"
	"github.com/kagretirement/registry/api/internal/repository"
)

const entityPastor = "pastor"

// PastorCodePrefix starts every server-generated pastor code.
const PastorCodePrefix = "pas"

// CreatePastorInput carries the fields accepted when creating a pastor.
// Blank PastorID asks the server to generate one.
type CreatePastorInput struct {
	FullName                string
	CurrentPosition         string
	PastorID                string
	Gender                  *string
	IDNo                    *string
	DateOfBirth             *string
	Age                     models.LooseInt
	StartOfService          *string
	ProjectedRetirementDate *string
	RemainingTenure         models.LooseInt
}

// UpdatePastorInput carries a partial pastor update. Fields that are not Set
// are left untouched; Set fields holding null clear the stored value.
type UpdatePastorInput struct {
	FullName                models.Optional[string]
	CurrentPosition         models.Optional[string]
	Gender                  models.Optional[string]
	IDNo                    models.Optional[string]
	DateOfBirth             models.Optional[string]
	Age                     models.LooseInt
	StartOfService          models.Optional[string]
	ProjectedRetirementDate models.Optional[string]
	RemainingTenure         models.LooseInt
}

// PastorService defines the pastor manager operations.
type PastorService interface {
	// ListPastors returns the section's pastors as cards, newest first.
	ListPastors(ctx context.Context, sectionID string) ([]models.PastorCard, error)

	// GetPastor returns a *NotFoundError when id is unknown.
	GetPastor(ctx context.Context, id string) (*models.PastorCard, error)

	// CreatePastor returns only the new pastor's id and code. A pastor code
	// already used anywhere in the registry yields a *ConflictError.
	CreatePastor(ctx context.Context, sectionID string, in CreatePastorInput) (*models.PastorRef, error)

	// UpdatePastor applies the Set fields of in and returns the full card.
	// The section and pastor code cannot be changed.
	UpdatePastor(ctx context.Context, id string, in UpdatePastorInput) (*models.PastorCard, error)

	// DeletePastor returns a *NotFoundError when id is unknown.
	DeletePastor(ctx context.Context, id string) error
}

// pastorService is the concrete implementation of PastorService.
type pastorService struct {
	store        repository.Store
	log          *logger.Logger
	codeAttempts int
	now          func() time.Time
	newCode      func() string
}

// NewPastorService creates a new instance of PastorService. codeAttempts
// bounds how many generated pastor codes are tried before a collision is
// reported; values below 1 are treated as 1.
func NewPastorService(store repository.Store, log *logger.Logger, codeAttempts int) PastorService {
	if codeAttempts < 1 {
		codeAttempts = 1
	}
	return &pastorService{
		store:        store,
		log:          log,
		codeAttempts: codeAttempts,
		now:          utcNow,
		newCode:      generatePastorCode,
	}
}

// generatePastorCode returns the prefix followed by a zero-padded number in
// [0, 999].
func generatePastorCode() string {
	return fmt.Sprintf("%s%03d", PastorCodePrefix, rand.IntN(1000))
}

func (s *pastorService) ListPastors(ctx context.Context, sectionID string) ([]models.PastorCard, error) {
	pastors, err := s.store.Pastors().ListBySection(ctx, sectionID)
	if err != nil {
		s.log.Error("Failed to list pastors", err, map[string]interface{}{
			"section_id": sectionID,
		})
		return nil, fmt.Errorf("failed to list pastors: %w", err)
	}

	cards := make([]models.PastorCard, 0, len(pastors))
	for i := range pastors {
		cards = append(cards, pastors[i].Card())
	}
	return cards, nil
}

func (s *pastorService) GetPastor(ctx context.Context, id string) (*models.PastorCard, error) {
	pastor, err := s.store.Pastors().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pastor: %w", err)
	}
	if pastor == nil {
		return nil, &NotFoundError{Entity: entityPastor, ID: id}
	}

	card := pastor.Card()
	return &card, nil
}

func (s *pastorService) CreatePastor(ctx context.Context, sectionID string, in CreatePastorInput) (*models.PastorRef, error) {
	fullName := strings.TrimSpace(in.FullName)
	currentPosition := strings.TrimSpace(in.CurrentPosition)
	code := strings.TrimSpace(in.PastorID)

	errs := fieldErrors{}
	errs.check("fullName", fullName, ruleName)
	errs.check("currentPosition", currentPosition, ruleName)
	errs.check("pastorId", code, rulePastorID)
	errs.checkOptional("gender", in.Gender, ruleGender)
	errs.checkOptional("idNo", in.IDNo, ruleIDNo)
	errs.checkOptional("yearOfBirth", in.DateOfBirth, ruleDate)
	errs.checkOptional("startOfService", in.StartOfService, ruleDate)
	errs.checkOptional("projectedRetirementDate", in.ProjectedRetirementDate, ruleDate)
	if err := errs.err(); err != nil {
		s.log.Warn("Invalid pastor input", map[string]interface{}{
			"section_id": sectionID,
			"fields":     errs,
		})
		return nil, err
	}

	pastor := &models.Pastor{
		SectionID:               sectionID,
		FullName:                fullName,
		CurrentPosition:         currentPosition,
		Gender:                  in.Gender,
		IDNo:                    in.IDNo,
		DateOfBirth:             in.DateOfBirth,
		Age:                     in.Age.Value,
		StartOfService:          in.StartOfService,
		ProjectedRetirementDate: in.ProjectedRetirementDate,
		RemainingTenure:         in.RemainingTenure.Value,
	}

	generated := code == ""
	attempts := 1
	if generated {
		attempts = s.codeAttempts
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		pastor.ID = uuid.NewString()
		pastor.CreatedAt = s.now()
		pastor.PastorID = code
		if generated {
			pastor.PastorID = s.newCode()
		}

		err = s.store.Pastors().Create(ctx, pastor)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			s.log.Error("Failed to create pastor", err, map[string]interface{}{
				"section_id": sectionID,
			})
			return nil, fmt.Errorf("failed to create pastor: %w", err)
		}

		s.log.Warn("Pastor code already in use", map[string]interface{}{
			"pastor_code": pastor.PastorID,
			"generated":   generated,
			"attempt":     attempt,
		})
	}
	if err != nil {
		return nil, &ConflictError{Message: "pastorId must be unique", Err: err}
	}

	s.log.Info("Pastor created", map[string]interface{}{
		"pastor_id":   pastor.ID,
		"pastor_code": pastor.PastorID,
		"section_id":  sectionID,
	})
	return &models.PastorRef{ID: pastor.ID, PastorID: pastor.PastorID}, nil
}

func (s *pastorService) UpdatePastor(ctx context.Context, id string, in UpdatePastorInput) (*models.PastorCard, error) {
	var fullName, currentPosition string
	errs := fieldErrors{}
	if in.FullName.Set {
		fullName = trimmed(in.FullName.Value)
		errs.check("fullName", fullName, ruleName)
	}
	if in.CurrentPosition.Set {
		currentPosition = trimmed(in.CurrentPosition.Value)
		errs.check("currentPosition", currentPosition, ruleName)
	}
	errs.checkOptional("gender", in.Gender.Value, ruleGender)
	errs.checkOptional("idNo", in.IDNo.Value, ruleIDNo)
	errs.checkOptional("yearOfBirth", in.DateOfBirth.Value, ruleDate)
	errs.checkOptional("startOfService", in.StartOfService.Value, ruleDate)
	errs.checkOptional("projectedRetirementDate", in.ProjectedRetirementDate.Value, ruleDate)

	var pastor *models.Pastor
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		current, err := tx.Pastors().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &NotFoundError{Entity: entityPastor, ID: id}
		}
		if err := errs.err(); err != nil {
			return err
		}

		if in.FullName.Set {
			current.FullName = fullName
		}
		if in.CurrentPosition.Set {
			current.CurrentPosition = currentPosition
		}
		if in.Gender.Set {
			current.Gender = in.Gender.Value
		}
		if in.IDNo.Set {
			current.IDNo = in.IDNo.Value
		}
		if in.DateOfBirth.Set {
			current.DateOfBirth = in.DateOfBirth.Value
		}
		if in.Age.Set {
			current.Age = in.Age.Value
		}
		if in.StartOfService.Set {
			current.StartOfService = in.StartOfService.Value
		}
		if in.ProjectedRetirementDate.Set {
			current.ProjectedRetirementDate = in.ProjectedRetirementDate.Value
		}
		if in.RemainingTenure.Set {
			current.RemainingTenure = in.RemainingTenure.Value
		}

		if err := tx.Pastors().Update(ctx, current); err != nil {
			return err
		}
		pastor = current
		return nil
	})
	if err != nil {
		var nf *NotFoundError
		var ve *ValidationError
		if errors.As(err, &nf) || errors.As(err, &ve) {
			return nil, err
		}
		s.log.Error("Failed to update pastor", err, map[string]interface{}{
			"pastor_id": id,
		})
		return nil, fmt.Errorf("failed to update pastor: %w", err)
	}

	s.log.Info("Pastor updated", map[string]interface{}{
		"pastor_id": id,
	})
	card := pastor.Card()
	return &card, nil
}

func (s *pastorService) DeletePastor(ctx context.Context, id string) error {
	deleted, err := s.store.Pastors().Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete pastor", err, map[string]interface{}{
			"pastor_id": id,
		})
		return fmt.Errorf("failed to delete pastor: %w", err)
	}
	if !deleted {
		return &NotFoundError{Entity: entityPastor, ID: id}
	}

	s.log.Info("Pastor deleted", map[string]interface{}{
		"pastor_id": id,
	})
	return nil
}

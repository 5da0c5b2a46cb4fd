package services

import (
	"context"

	"github.com/kagretirement/registry/api/internal/repository"
)

// recountSections runs mutate between locking the district row and
// rewriting its section count from the live sections, all on tx. The lock
// is taken first so concurrent section writes under one district queue up
// and each recount sees every committed sibling. When the district does not
// exist the mutation still runs and the recount is skipped.
func (s *sectionService) recountSections(ctx context.Context, tx repository.Store, districtID string, mutate func() error) error {
	district, err := tx.Districts().FindByIDForUpdate(ctx, districtID)
	if err != nil {
		return err
	}

	if err := mutate(); err != nil {
		return err
	}

	if district == nil {
		s.log.Debug("District not found, skipping section recount", map[string]interface{}{
			"district_id": districtID,
		})
		return nil
	}

	count, err := tx.Sections().CountByDistrict(ctx, districtID)
	if err != nil {
		return err
	}
	if err := tx.Districts().SetSectionCount(ctx, districtID, count); err != nil {
		return err
	}

	s.log.Debug("District section count recomputed", map[string]interface{}{
		"district_id":   districtID,
		"section_count": count,
	})
	return nil
}

package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kagretirement/registry/api/internal/database"
	"github.com/kagretirement/registry/api/internal/logger"
	"github.com/kagretirement/registry/api/internal/models"
)

// setupTestStore opens a fresh SQLite database in a temp dir.
func setupTestStore(t *testing.T) Store {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewSQLite(ctx, filepath.Join(t.TempDir(), "registry.db"), logger.New("test"))
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx), "Failed to create schema")
	return NewStore(db)
}

func newDistrict(name string, createdAt time.Time) *models.District {
	return &models.District{ID: uuid.NewString(), Name: name, CreatedAt: createdAt}
}

func newSection(districtID, name string, createdAt time.Time) *models.Section {
	return &models.Section{ID: uuid.NewString(), DistrictID: districtID, Name: name, CreatedAt: createdAt}
}

func TestDistrictRepository_CreateAndFind(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	d := newDistrict("Accra", time.Now().UTC())
	d.SectionCount = 3
	require.NoError(t, s.Districts().Create(ctx, d))

	found, err := s.Districts().FindByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Accra", found.Name)
	assert.Equal(t, 3, found.SectionCount)
	assert.True(t, d.CreatedAt.Equal(found.CreatedAt), "Expected createdAt to round-trip")
}

func TestDistrictRepository_FindByID_NotFound(t *testing.T) {
	s := setupTestStore(t)

	found, err := s.Districts().FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDistrictRepository_DuplicateName(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Districts().Create(ctx, newDistrict("Accra", time.Now().UTC())))

	err := s.Districts().Create(ctx, newDistrict("Accra", time.Now().UTC()))
	assert.ErrorIs(t, err, ErrDuplicate)

	other := newDistrict("Kumasi", time.Now().UTC())
	require.NoError(t, s.Districts().Create(ctx, other))
	other.Name = "Accra"
	assert.ErrorIs(t, s.Districts().Update(ctx, other), ErrDuplicate)
}

func TestDistrictRepository_ListNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.Districts().Create(ctx, newDistrict("Accra", base)))
	require.NoError(t, s.Districts().Create(ctx, newDistrict("Kumasi", base.Add(2*time.Hour))))
	require.NoError(t, s.Districts().Create(ctx, newDistrict("Tamale", base.Add(time.Hour))))

	districts, err := s.Districts().List(ctx)
	require.NoError(t, err)
	require.Len(t, districts, 3)
	assert.Equal(t, "Kumasi", districts[0].Name)
	assert.Equal(t, "Tamale", districts[1].Name)
	assert.Equal(t, "Accra", districts[2].Name)
}

func TestDistrictRepository_ListEmpty(t *testing.T) {
	s := setupTestStore(t)

	districts, err := s.Districts().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, districts)
	assert.Empty(t, districts)
}

func TestDistrictRepository_Delete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	d := newDistrict("Accra", time.Now().UTC())
	require.NoError(t, s.Districts().Create(ctx, d))

	deleted, err := s.Districts().Delete(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Districts().Delete(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSectionRepository_CountAndList(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.Sections().Create(ctx, newSection("d-1", "North", base)))
	require.NoError(t, s.Sections().Create(ctx, newSection("d-1", "South", base.Add(time.Minute))))
	require.NoError(t, s.Sections().Create(ctx, newSection("d-2", "East", base)))

	count, err := s.Sections().CountByDistrict(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = s.Sections().CountByDistrict(ctx, "d-unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	sections, err := s.Sections().ListByDistrict(ctx, "d-1")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "South", sections[0].Name)
	assert.Equal(t, "North", sections[1].Name)
}

func TestSectionRepository_Update(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sec := newSection("d-1", "North", time.Now().UTC())
	require.NoError(t, s.Sections().Create(ctx, sec))

	sec.Name = "North East"
	sec.ChurchCount = 14
	require.NoError(t, s.Sections().Update(ctx, sec))

	found, err := s.Sections().FindByID(ctx, sec.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "North East", found.Name)
	assert.Equal(t, 14, found.ChurchCount)
	assert.Equal(t, "d-1", found.DistrictID)
}

func TestPastorRepository_NullableRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	gender := "M"
	age := 61
	p := &models.Pastor{
		ID:              uuid.NewString(),
		SectionID:       "s-1",
		FullName:        "Kwame Mensah",
		PastorID:        "pas001",
		Gender:          &gender,
		CurrentPosition: "Senior Pastor",
		Age:             &age,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, s.Pastors().Create(ctx, p))

	found, err := s.Pastors().FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Kwame Mensah", found.FullName)
	require.NotNil(t, found.Gender)
	assert.Equal(t, "M", *found.Gender)
	require.NotNil(t, found.Age)
	assert.Equal(t, 61, *found.Age)
	assert.Nil(t, found.IDNo)
	assert.Nil(t, found.DateOfBirth)
	assert.Nil(t, found.RemainingTenure)

	found.Gender = nil
	found.Age = nil
	tenure := 4
	found.RemainingTenure = &tenure
	require.NoError(t, s.Pastors().Update(ctx, found))

	updated, err := s.Pastors().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Gender)
	assert.Nil(t, updated.Age)
	require.NotNil(t, updated.RemainingTenure)
	assert.Equal(t, 4, *updated.RemainingTenure)
	assert.Equal(t, "pas001", updated.PastorID)
}

func TestPastorRepository_DuplicatePastorIDAcrossSections(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := &models.Pastor{ID: uuid.NewString(), SectionID: "s-1", FullName: "A", PastorID: "pas100",
		CurrentPosition: "Pastor", CreatedAt: time.Now().UTC()}
	second := &models.Pastor{ID: uuid.NewString(), SectionID: "s-2", FullName: "B", PastorID: "pas100",
		CurrentPosition: "Pastor", CreatedAt: time.Now().UTC()}

	require.NoError(t, s.Pastors().Create(ctx, first))
	assert.ErrorIs(t, s.Pastors().Create(ctx, second), ErrDuplicate)

	pastors, err := s.Pastors().ListBySection(ctx, "s-2")
	require.NoError(t, err)
	assert.Empty(t, pastors)
}

func TestStore_WithTx_RollsBackAllRepositories(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	d := newDistrict("Accra", time.Now().UTC())
	err := s.WithTx(ctx, func(tx Store) error {
		if err := tx.Districts().Create(ctx, d); err != nil {
			return err
		}
		if err := tx.Sections().Create(ctx, newSection(d.ID, "North", time.Now().UTC())); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := s.Districts().FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	count, err := s.Sections().CountByDistrict(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_WithTx_NestedReusesTransaction(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	d := newDistrict("Accra", time.Now().UTC())
	err := s.WithTx(ctx, func(tx Store) error {
		return tx.WithTx(ctx, func(inner Store) error {
			return inner.Districts().Create(ctx, d)
		})
	})
	require.NoError(t, err)

	found, err := s.Districts().FindByIDForUpdate(ctx, d.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

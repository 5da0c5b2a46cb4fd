package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kagretirement/registry/api/internal/models"
	"github.com/kagretirement/registry/api/internal/repository"
)

// MockDistrictRepository is a mock implementation of DistrictRepository for testing
type MockDistrictRepository struct {
	mock.Mock
}

func (m *MockDistrictRepository) List(ctx context.Context) ([]models.District, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.District), args.Error(1)
}

func (m *MockDistrictRepository) FindByID(ctx context.Context, id string) (*models.District, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.District), args.Error(1)
}

func (m *MockDistrictRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.District, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.District), args.Error(1)
}

func (m *MockDistrictRepository) Create(ctx context.Context, d *models.District) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDistrictRepository) Update(ctx context.Context, d *models.District) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDistrictRepository) SetSectionCount(ctx context.Context, id string, count int) error {
	return m.Called(ctx, id, count).Error(0)
}

func (m *MockDistrictRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSectionRepository is a mock implementation of SectionRepository for testing
type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) ListByDistrict(ctx context.Context, districtID string) ([]models.Section, error) {
	args := m.Called(ctx, districtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Section), args.Error(1)
}

func (m *MockSectionRepository) FindByID(ctx context.Context, id string) (*models.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func (m *MockSectionRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func (m *MockSectionRepository) CountByDistrict(ctx context.Context, districtID string) (int, error) {
	args := m.Called(ctx, districtID)
	return args.Int(0), args.Error(1)
}

func (m *MockSectionRepository) Create(ctx context.Context, s *models.Section) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSectionRepository) Update(ctx context.Context, s *models.Section) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSectionRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockPastorRepository is a mock implementation of PastorRepository for testing
type MockPastorRepository struct {
	mock.Mock
}

func (m *MockPastorRepository) ListBySection(ctx context.Context, sectionID string) ([]models.Pastor, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pastor), args.Error(1)
}

func (m *MockPastorRepository) FindByID(ctx context.Context, id string) (*models.Pastor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pastor), args.Error(1)
}

func (m *MockPastorRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Pastor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pastor), args.Error(1)
}

func (m *MockPastorRepository) Create(ctx context.Context, p *models.Pastor) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPastorRepository) Update(ctx context.Context, p *models.Pastor) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPastorRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// mockStore hands out the mock repositories. WithTx runs fn against the
// same store and reports whether it was used.
type mockStore struct {
	districts *MockDistrictRepository
	sections  *MockSectionRepository
	pastors   *MockPastorRepository
	txCalls   int
}

func newMockStore() *mockStore {
	return &mockStore{
		districts: new(MockDistrictRepository),
		sections:  new(MockSectionRepository),
		pastors:   new(MockPastorRepository),
	}
}

func (s *mockStore) Districts() repository.DistrictRepository { return s.districts }
func (s *mockStore) Sections() repository.SectionRepository   { return s.sections }
func (s *mockStore) Pastors() repository.PastorRepository     { return s.pastors }

func (s *mockStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	s.txCalls++
	return fn(s)
}

func (s *mockStore) assertExpectations(t mock.TestingT) {
	s.districts.AssertExpectations(t)
	s.sections.AssertExpectations(t)
	s.pastors.AssertExpectations(t)
}

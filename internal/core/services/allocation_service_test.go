package services_test

import (
	"context"
	"testing"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/core/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AllocationRepository ---
type MockAllocationRepository struct {
	mock.Mock
}

// Ensure MockAllocationRepository implements portsrepo.AllocationRepositoryFacade
var _ portsrepo.AllocationRepositoryFacade = (*MockAllocationRepository)(nil)

func (m *MockAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.CategoryAllocation, error) {
	args := m.Called(ctx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryAllocation), args.Error(1)
}

func (m *MockAllocationRepository) FindActiveAllocation(ctx context.Context, categoryID string, month, year int) (*domain.CategoryAllocation, error) {
	args := m.Called(ctx, categoryID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryAllocation), args.Error(1)
}

func (m *MockAllocationRepository) ListAllocationsByCategory(ctx context.Context, categoryID string) ([]domain.CategoryAllocation, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryAllocation), args.Error(1)
}

func (m *MockAllocationRepository) ListActiveAllocationsForMonth(ctx context.Context, userID string, month, year int) ([]domain.CategoryAllocation, error) {
	args := m.Called(ctx, userID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryAllocation), args.Error(1)
}

func (m *MockAllocationRepository) SumActiveAllocationsForMonth(ctx context.Context, userID string, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, month, year)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAllocationRepository) FindLatestAllocationPeriod(ctx context.Context, userID string) (*domain.Period, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.CategoryAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.CategoryAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

// --- Mock CategoryService (as used by AllocationService) ---
type MockCategoryService struct {
	mock.Mock
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) ListCategories(ctx context.Context, userID string, includeInactive bool) ([]domain.Category, error) {
	args := m.Called(ctx, userID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) DeactivateCategory(ctx context.Context, userID string, categoryID string) error {
	args := m.Called(ctx, userID, categoryID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AllocationServiceTestSuite struct {
	suite.Suite
	mockAllocationRepo *MockAllocationRepository
	mockCategorySvc    *MockCategoryService
	service            portssvc.AllocationSvcFacade
	userID             string
	category           domain.Category
}

func (suite *AllocationServiceTestSuite) SetupTest() {
	suite.mockAllocationRepo = new(MockAllocationRepository)
	suite.mockCategorySvc = new(MockCategoryService)
	suite.service = services.NewAllocationService(suite.mockAllocationRepo, suite.mockCategorySvc)

	suite.userID = uuid.NewString()
	suite.category = domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     suite.userID,
		Name:       "Groceries",
		IsActive:   true,
	}
}

// --- Test Cases ---

func (suite *AllocationServiceTestSuite) TestCreateAllocation_Success() {
	ctx := context.Background()
	req := dto.CreateAllocationRequest{
		CategoryID:     suite.category.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
	}

	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockAllocationRepo.On("SaveAllocation", ctx, mock.AnythingOfType("domain.CategoryAllocation")).Return(nil).Once()

	created, err := suite.service.CreateAllocation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AllocationID)
	suite.Equal(suite.category.CategoryID, created.CategoryID)
	suite.Equal(6, created.Month)
	suite.Equal(2025, created.Year)
	suite.True(created.BudgetedAmount.Equal(decimal.NewFromInt(400)))
	suite.True(created.IsActive)
	suite.Equal(suite.userID, created.CreatedBy)

	suite.mockCategorySvc.AssertExpectations(suite.T())
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestCreateAllocation_DuplicateActive() {
	ctx := context.Background()
	req := dto.CreateAllocationRequest{
		CategoryID:     suite.category.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
	}

	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockAllocationRepo.On("SaveAllocation", ctx, mock.AnythingOfType("domain.CategoryAllocation")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAllocation(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrDuplicateAllocation)

	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestCreateAllocation_InvalidPeriod() {
	ctx := context.Background()

	tests := []struct {
		name  string
		month int
		year  int
	}{
		{"month too large", 13, 2025},
		{"month zero", 0, 2025},
		{"year before window", 6, 1999},
		{"year after window", 6, 2101},
	}

	for _, tt := range tests {
		req := dto.CreateAllocationRequest{
			CategoryID:     suite.category.CategoryID,
			Month:          tt.month,
			Year:           tt.year,
			BudgetedAmount: decimal.NewFromInt(100),
		}

		created, err := suite.service.CreateAllocation(ctx, suite.userID, req)

		suite.Require().Error(err, tt.name)
		suite.Nil(created, tt.name)
		suite.ErrorIs(err, apperrors.ErrInvalidPeriod, tt.name)
	}

	// Validation precedes every lookup and write
	suite.mockCategorySvc.AssertNotCalled(suite.T(), "GetCategoryByID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "SaveAllocation", mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestCreateAllocation_InactiveCategory() {
	ctx := context.Background()
	inactive := suite.category
	inactive.IsActive = false

	req := dto.CreateAllocationRequest{
		CategoryID:     inactive.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(100),
	}

	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, inactive.CategoryID).Return(&inactive, nil).Once()

	created, err := suite.service.CreateAllocation(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrCategoryNotActive)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "SaveAllocation", mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestUpdateAllocation_AmountChangePreservesOldAmount() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	existing := domain.CategoryAllocation{
		AllocationID:   allocationID,
		CategoryID:     suite.category.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
		IsActive:       true,
	}
	newAmount := decimal.NewFromInt(550)
	req := dto.UpdateAllocationRequest{BudgetedAmount: &newAmount}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, allocationID).Return(&existing, nil).Once()
	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockAllocationRepo.On("UpdateAllocation", ctx, mock.MatchedBy(func(a domain.CategoryAllocation) bool {
		return a.AllocationID == allocationID &&
			a.BudgetedAmount.Equal(newAmount) &&
			a.OldAmount != nil && a.OldAmount.Equal(decimal.NewFromInt(400))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAllocation(ctx, suite.userID, allocationID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.BudgetedAmount.Equal(newAmount))
	suite.Require().NotNil(updated.OldAmount)
	suite.True(updated.OldAmount.Equal(decimal.NewFromInt(400)))
	suite.Equal(suite.userID, updated.LastUpdatedBy)

	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestUpdateAllocation_SameAmountLeavesOldAmountNil() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	existing := domain.CategoryAllocation{
		AllocationID:   allocationID,
		CategoryID:     suite.category.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
		IsActive:       true,
	}
	sameAmount := decimal.NewFromInt(400)
	req := dto.UpdateAllocationRequest{BudgetedAmount: &sameAmount}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, allocationID).Return(&existing, nil).Once()
	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockAllocationRepo.On("UpdateAllocation", ctx, mock.AnythingOfType("domain.CategoryAllocation")).Return(nil).Once()

	updated, err := suite.service.UpdateAllocation(ctx, suite.userID, allocationID, req)

	suite.Require().NoError(err)
	suite.Nil(updated.OldAmount)
}

func (suite *AllocationServiceTestSuite) TestUpdateAllocation_ReactivateOverExistingActive() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	existing := domain.CategoryAllocation{
		AllocationID:   allocationID,
		CategoryID:     suite.category.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
		IsActive:       false,
	}
	active := true
	req := dto.UpdateAllocationRequest{IsActive: &active}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, allocationID).Return(&existing, nil).Once()
	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockAllocationRepo.On("UpdateAllocation", ctx, mock.AnythingOfType("domain.CategoryAllocation")).Return(apperrors.ErrDuplicate).Once()

	updated, err := suite.service.UpdateAllocation(ctx, suite.userID, allocationID, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrDuplicateAllocation)
}

func (suite *AllocationServiceTestSuite) TestUpdateAllocation_NotOwned() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	existing := domain.CategoryAllocation{
		AllocationID: allocationID,
		CategoryID:   suite.category.CategoryID,
		Month:        6,
		Year:         2025,
	}
	newAmount := decimal.NewFromInt(550)
	req := dto.UpdateAllocationRequest{BudgetedAmount: &newAmount}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, allocationID).Return(&existing, nil).Once()
	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(nil, apperrors.ErrForbidden).Once()

	updated, err := suite.service.UpdateAllocation(ctx, suite.userID, allocationID, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "UpdateAllocation", mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestDeactivateAllocation_Success() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	existing := domain.CategoryAllocation{
		AllocationID:   allocationID,
		CategoryID:     suite.category.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
		IsActive:       true,
	}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, allocationID).Return(&existing, nil).Once()
	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockAllocationRepo.On("UpdateAllocation", ctx, mock.MatchedBy(func(a domain.CategoryAllocation) bool {
		return a.AllocationID == allocationID && !a.IsActive
	})).Return(nil).Once()

	err := suite.service.DeactivateAllocation(ctx, suite.userID, allocationID)

	suite.Require().NoError(err)
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestDeactivateAllocation_AlreadyInactiveIsNoop() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	existing := domain.CategoryAllocation{
		AllocationID:   allocationID,
		CategoryID:     suite.category.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
		IsActive:       false,
	}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, allocationID).Return(&existing, nil).Once()
	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(&suite.category, nil).Once()

	err := suite.service.DeactivateAllocation(ctx, suite.userID, allocationID)

	suite.Require().NoError(err)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "UpdateAllocation", mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestGetActiveAllocation_Success() {
	ctx := context.Background()
	allocation := domain.CategoryAllocation{
		AllocationID:   uuid.NewString(),
		CategoryID:     suite.category.CategoryID,
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
		IsActive:       true,
	}

	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.category.CategoryID).Return(&suite.category, nil).Once()
	suite.mockAllocationRepo.On("FindActiveAllocation", ctx, suite.category.CategoryID, 6, 2025).Return(&allocation, nil).Once()

	found, err := suite.service.GetActiveAllocation(ctx, suite.userID, suite.category.CategoryID, 6, 2025)

	suite.Require().NoError(err)
	suite.Equal(allocation.AllocationID, found.AllocationID)
}

func (suite *AllocationServiceTestSuite) TestGetActiveAllocation_InvalidPeriod() {
	ctx := context.Background()

	found, err := suite.service.GetActiveAllocation(ctx, suite.userID, suite.category.CategoryID, 13, 2025)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "FindActiveAllocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestListAllocationsForMonth_RepoError() {
	ctx := context.Background()

	suite.mockAllocationRepo.On("ListActiveAllocationsForMonth", ctx, suite.userID, 6, 2025).Return(nil, assert.AnError).Once()

	allocations, err := suite.service.ListAllocationsForMonth(ctx, suite.userID, 6, 2025)

	suite.Require().Error(err)
	suite.Nil(allocations)
	suite.ErrorIs(err, assert.AnError)
}

// --- Run Suite ---
func TestAllocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}

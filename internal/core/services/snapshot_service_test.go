package services_test

import (
	"context"
	"testing"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SnapshotRepository ---
type MockSnapshotRepository struct {
	mock.Mock
}

// Ensure MockSnapshotRepository implements portsrepo.SnapshotRepositoryFacade
var _ portsrepo.SnapshotRepositoryFacade = (*MockSnapshotRepository)(nil)

func (m *MockSnapshotRepository) FindSnapshot(ctx context.Context, userID string, month, year int) (*domain.BudgetSnapshot, error) {
	args := m.Called(ctx, userID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) ListSnapshots(ctx context.Context, userID string) ([]domain.BudgetSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) FindLatestSnapshotPeriod(ctx context.Context, userID string) (*domain.Period, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.BudgetSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- Test Suite Setup ---
type SnapshotServiceTestSuite struct {
	suite.Suite
	mockSnapshotRepo    *MockSnapshotRepository
	mockAllocationRepo  *MockAllocationRepository
	mockTransactionRepo *MockTransactionRepository
	service             portssvc.SnapshotSvcFacade
	userID              string
}

func (suite *SnapshotServiceTestSuite) SetupTest() {
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.mockAllocationRepo = new(MockAllocationRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.service = services.NewSnapshotService(suite.mockSnapshotRepo, suite.mockAllocationRepo, suite.mockTransactionRepo)

	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *SnapshotServiceTestSuite) TestRebuildSnapshot_NoPreviousMonth() {
	ctx := context.Background()

	suite.mockTransactionRepo.On("SumIncomeForMonth", ctx, suite.userID, 6, 2025).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockAllocationRepo.On("SumActiveAllocationsForMonth", ctx, suite.userID, 6, 2025).Return(decimal.NewFromInt(800), nil).Once()
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 5, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.MatchedBy(func(s domain.BudgetSnapshot) bool {
		return s.Month == 6 && s.Year == 2025 && s.ReadyToAssign.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()

	snapshot, err := suite.service.RebuildSnapshot(ctx, suite.userID, 6, 2025)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.Equal(suite.userID, snapshot.UserID)
	suite.True(snapshot.TotalIncome.Equal(decimal.NewFromInt(1000)))
	suite.True(snapshot.TotalAllocated.Equal(decimal.NewFromInt(800)))
	// Missing predecessor means a zero carry-in
	suite.True(snapshot.ReadyToAssign.Equal(decimal.NewFromInt(200)))

	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *SnapshotServiceTestSuite) TestRebuildSnapshot_CarriesPreviousBalance() {
	ctx := context.Background()
	prev := domain.BudgetSnapshot{
		SnapshotID:    uuid.NewString(),
		UserID:        suite.userID,
		Month:         5,
		Year:          2025,
		ReadyToAssign: decimal.NewFromInt(50),
	}

	suite.mockTransactionRepo.On("SumIncomeForMonth", ctx, suite.userID, 6, 2025).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockAllocationRepo.On("SumActiveAllocationsForMonth", ctx, suite.userID, 6, 2025).Return(decimal.NewFromInt(800), nil).Once()
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 5, 2025).Return(&prev, nil).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.AnythingOfType("domain.BudgetSnapshot")).Return(nil).Once()

	snapshot, err := suite.service.RebuildSnapshot(ctx, suite.userID, 6, 2025)

	suite.Require().NoError(err)
	// 50 carry-in + 1000 income - 800 allocated
	suite.True(snapshot.ReadyToAssign.Equal(decimal.NewFromInt(250)))
}

func (suite *SnapshotServiceTestSuite) TestRebuildSnapshot_JanuaryLooksAtPriorDecember() {
	ctx := context.Background()

	suite.mockTransactionRepo.On("SumIncomeForMonth", ctx, suite.userID, 1, 2025).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockAllocationRepo.On("SumActiveAllocationsForMonth", ctx, suite.userID, 1, 2025).Return(decimal.NewFromInt(40), nil).Once()
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 12, 2024).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.AnythingOfType("domain.BudgetSnapshot")).Return(nil).Once()

	_, err := suite.service.RebuildSnapshot(ctx, suite.userID, 1, 2025)

	suite.Require().NoError(err)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *SnapshotServiceTestSuite) TestRebuildSnapshot_FirstBudgetYearSkipsPreviousLookup() {
	ctx := context.Background()

	suite.mockTransactionRepo.On("SumIncomeForMonth", ctx, suite.userID, 1, 2000).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockAllocationRepo.On("SumActiveAllocationsForMonth", ctx, suite.userID, 1, 2000).Return(decimal.NewFromInt(40), nil).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.AnythingOfType("domain.BudgetSnapshot")).Return(nil).Once()

	snapshot, err := suite.service.RebuildSnapshot(ctx, suite.userID, 1, 2000)

	suite.Require().NoError(err)
	suite.True(snapshot.ReadyToAssign.Equal(decimal.NewFromInt(60)))
	// December 1999 is outside the budget window
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "FindSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SnapshotServiceTestSuite) TestRebuildSnapshot_InvalidPeriod() {
	ctx := context.Background()

	snapshot, err := suite.service.RebuildSnapshot(ctx, suite.userID, 13, 2025)

	suite.Require().Error(err)
	suite.Nil(snapshot)
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SumIncomeForMonth", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "UpsertSnapshot", mock.Anything, mock.Anything)
}

func (suite *SnapshotServiceTestSuite) TestRebuildFrom_CascadesThroughLatestMonthWithData() {
	ctx := context.Background()

	// Data reaches August via the ledger; allocations stop in July
	txnPeriod := domain.Period{Month: 8, Year: 2025}
	allocPeriod := domain.Period{Month: 7, Year: 2025}
	suite.mockTransactionRepo.On("FindLatestTransactionPeriod", ctx, suite.userID).Return(&txnPeriod, nil).Once()
	suite.mockAllocationRepo.On("FindLatestAllocationPeriod", ctx, suite.userID).Return(&allocPeriod, nil).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshotPeriod", ctx, suite.userID).Return(nil, nil).Once()

	for month := 6; month <= 8; month++ {
		suite.mockTransactionRepo.On("SumIncomeForMonth", ctx, suite.userID, month, 2025).Return(decimal.NewFromInt(100), nil).Once()
		suite.mockAllocationRepo.On("SumActiveAllocationsForMonth", ctx, suite.userID, month, 2025).Return(decimal.NewFromInt(40), nil).Once()
	}

	// Each month's carry-in is the previously persisted value
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 5, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 6, 2025).Return(&domain.BudgetSnapshot{Month: 6, Year: 2025, ReadyToAssign: decimal.NewFromInt(60)}, nil).Once()
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 7, 2025).Return(&domain.BudgetSnapshot{Month: 7, Year: 2025, ReadyToAssign: decimal.NewFromInt(120)}, nil).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.AnythingOfType("domain.BudgetSnapshot")).Return(nil).Times(3)

	rebuilt, err := suite.service.RebuildFrom(ctx, suite.userID, 6, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(rebuilt, 3)
	suite.Equal(6, rebuilt[0].Month)
	suite.Equal(7, rebuilt[1].Month)
	suite.Equal(8, rebuilt[2].Month)
	suite.True(rebuilt[0].ReadyToAssign.Equal(decimal.NewFromInt(60)))
	suite.True(rebuilt[1].ReadyToAssign.Equal(decimal.NewFromInt(120)))
	suite.True(rebuilt[2].ReadyToAssign.Equal(decimal.NewFromInt(180)))

	suite.mockSnapshotRepo.AssertExpectations(suite.T())
	suite.mockTransactionRepo.AssertExpectations(suite.T())
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *SnapshotServiceTestSuite) TestRebuildFrom_CrossesYearBoundary() {
	ctx := context.Background()

	txnPeriod := domain.Period{Month: 1, Year: 2026}
	suite.mockTransactionRepo.On("FindLatestTransactionPeriod", ctx, suite.userID).Return(&txnPeriod, nil).Once()
	suite.mockAllocationRepo.On("FindLatestAllocationPeriod", ctx, suite.userID).Return(nil, nil).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshotPeriod", ctx, suite.userID).Return(nil, nil).Once()

	suite.mockTransactionRepo.On("SumIncomeForMonth", ctx, suite.userID, mock.Anything, mock.Anything).Return(decimal.Zero, nil).Times(2)
	suite.mockAllocationRepo.On("SumActiveAllocationsForMonth", ctx, suite.userID, mock.Anything, mock.Anything).Return(decimal.Zero, nil).Times(2)
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Times(2)
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.AnythingOfType("domain.BudgetSnapshot")).Return(nil).Times(2)

	rebuilt, err := suite.service.RebuildFrom(ctx, suite.userID, 12, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(rebuilt, 2)
	suite.Equal(12, rebuilt[0].Month)
	suite.Equal(2025, rebuilt[0].Year)
	suite.Equal(1, rebuilt[1].Month)
	suite.Equal(2026, rebuilt[1].Year)
}

func (suite *SnapshotServiceTestSuite) TestRebuildFrom_NoDownstreamDataRebuildsSingleMonth() {
	ctx := context.Background()

	suite.mockTransactionRepo.On("FindLatestTransactionPeriod", ctx, suite.userID).Return(nil, nil).Once()
	suite.mockAllocationRepo.On("FindLatestAllocationPeriod", ctx, suite.userID).Return(nil, nil).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshotPeriod", ctx, suite.userID).Return(nil, nil).Once()

	suite.mockTransactionRepo.On("SumIncomeForMonth", ctx, suite.userID, 6, 2025).Return(decimal.Zero, nil).Once()
	suite.mockAllocationRepo.On("SumActiveAllocationsForMonth", ctx, suite.userID, 6, 2025).Return(decimal.Zero, nil).Once()
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 5, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.AnythingOfType("domain.BudgetSnapshot")).Return(nil).Once()

	rebuilt, err := suite.service.RebuildFrom(ctx, suite.userID, 6, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(rebuilt, 1)
	suite.Equal(6, rebuilt[0].Month)
}

func (suite *SnapshotServiceTestSuite) TestRebuildFrom_LatestDataBeforeStartRebuildsSingleMonth() {
	ctx := context.Background()

	txnPeriod := domain.Period{Month: 3, Year: 2025}
	suite.mockTransactionRepo.On("FindLatestTransactionPeriod", ctx, suite.userID).Return(&txnPeriod, nil).Once()
	suite.mockAllocationRepo.On("FindLatestAllocationPeriod", ctx, suite.userID).Return(nil, nil).Once()
	suite.mockSnapshotRepo.On("FindLatestSnapshotPeriod", ctx, suite.userID).Return(nil, nil).Once()

	suite.mockTransactionRepo.On("SumIncomeForMonth", ctx, suite.userID, 6, 2025).Return(decimal.Zero, nil).Once()
	suite.mockAllocationRepo.On("SumActiveAllocationsForMonth", ctx, suite.userID, 6, 2025).Return(decimal.Zero, nil).Once()
	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 5, 2025).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSnapshotRepo.On("UpsertSnapshot", ctx, mock.AnythingOfType("domain.BudgetSnapshot")).Return(nil).Once()

	rebuilt, err := suite.service.RebuildFrom(ctx, suite.userID, 6, 2025)

	suite.Require().NoError(err)
	suite.Require().Len(rebuilt, 1)
}

func (suite *SnapshotServiceTestSuite) TestRebuildFrom_InvalidPeriod() {
	ctx := context.Background()

	rebuilt, err := suite.service.RebuildFrom(ctx, suite.userID, 0, 2025)

	suite.Require().Error(err)
	suite.Nil(rebuilt)
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
}

func (suite *SnapshotServiceTestSuite) TestGetSnapshot_NotComputed() {
	ctx := context.Background()

	suite.mockSnapshotRepo.On("FindSnapshot", ctx, suite.userID, 6, 2025).Return(nil, apperrors.ErrNotFound).Once()

	snapshot, err := suite.service.GetSnapshot(ctx, suite.userID, 6, 2025)

	suite.Require().Error(err)
	suite.Nil(snapshot)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestSnapshotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotServiceTestSuite))
}

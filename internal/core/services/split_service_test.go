package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/core/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type SplitServiceTestSuite struct {
	suite.Suite
	mockTransactionRepo *MockTransactionRepository
	mockAllocationRepo  *MockAllocationRepository
	mockAccountSvc      *MockAccountService
	mockCategorySvc     *MockCategoryService
	service             portssvc.SplitSvcFacade
	userID              string
	account             domain.Account
	allocation          domain.CategoryAllocation
	transaction         domain.Transaction
}

func (suite *SplitServiceTestSuite) SetupTest() {
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockAllocationRepo = new(MockAllocationRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockCategorySvc = new(MockCategoryService)
	suite.service = services.NewSplitService(suite.mockTransactionRepo, suite.mockAllocationRepo, suite.mockAccountSvc, suite.mockCategorySvc)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		IsActive:  true,
	}
	suite.allocation = domain.CategoryAllocation{
		AllocationID:   uuid.NewString(),
		CategoryID:     uuid.NewString(),
		Month:          6,
		Year:           2025,
		BudgetedAmount: decimal.NewFromInt(400),
		IsActive:       true,
	}
	suite.transaction = domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       suite.account.AccountID,
		Payee:           "Corner Store",
		Amount:          decimal.NewFromInt(-90),
		TransactionDate: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *SplitServiceTestSuite) TestAddSplit_Success() {
	ctx := context.Background()
	req := dto.CreateSplitRequest{
		AllocationID: suite.allocation.AllocationID,
		Amount:       decimal.NewFromInt(-25),
		Notes:        "re-categorized",
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, suite.transaction.TransactionID).Return(&suite.transaction, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.allocation.AllocationID).Return(&suite.allocation, nil).Once()
	// No split-sum check on the standalone path; the splits may diverge
	suite.mockTransactionRepo.On("SaveSplit", ctx, mock.AnythingOfType("domain.TransactionSplit")).Return(nil).Once()

	created, err := suite.service.AddSplit(ctx, suite.userID, suite.transaction.TransactionID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.SplitID)
	suite.Equal(suite.transaction.TransactionID, created.TransactionID)
	suite.True(created.Amount.Equal(decimal.NewFromInt(-25)))
	suite.Equal(suite.transaction.TransactionDate, created.TransactionDate)

	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *SplitServiceTestSuite) TestAddSplit_ReconciledTransactionRejected() {
	ctx := context.Background()
	reconciled := suite.transaction
	reconciled.IsReconciled = true
	req := dto.CreateSplitRequest{
		AllocationID: suite.allocation.AllocationID,
		Amount:       decimal.NewFromInt(-25),
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, reconciled.TransactionID).Return(&reconciled, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()

	created, err := suite.service.AddSplit(ctx, suite.userID, reconciled.TransactionID, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrTransactionReconciled)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveSplit", mock.Anything, mock.Anything)
}

func (suite *SplitServiceTestSuite) TestAddSplit_InactiveAllocationRejected() {
	ctx := context.Background()
	retired := suite.allocation
	retired.IsActive = false
	req := dto.CreateSplitRequest{
		AllocationID: retired.AllocationID,
		Amount:       decimal.NewFromInt(-25),
	}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, suite.transaction.TransactionID).Return(&suite.transaction, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAllocationRepo.On("FindAllocationByID", ctx, retired.AllocationID).Return(&retired, nil).Once()

	created, err := suite.service.AddSplit(ctx, suite.userID, suite.transaction.TransactionID, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, services.ErrAllocationInactive)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveSplit", mock.Anything, mock.Anything)
}

func (suite *SplitServiceTestSuite) TestUpdateSplit_ReallocationChecksNewAllocation() {
	ctx := context.Background()
	split := domain.TransactionSplit{
		SplitID:       uuid.NewString(),
		TransactionID: suite.transaction.TransactionID,
		AllocationID:  suite.allocation.AllocationID,
		Amount:        decimal.NewFromInt(-90),
	}
	newAllocation := domain.CategoryAllocation{
		AllocationID: uuid.NewString(),
		CategoryID:   suite.allocation.CategoryID,
		Month:        6,
		Year:         2025,
		IsActive:     true,
	}
	req := dto.UpdateSplitRequest{AllocationID: &newAllocation.AllocationID}

	suite.mockTransactionRepo.On("FindSplitByID", ctx, split.SplitID).Return(&split, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, suite.transaction.TransactionID).Return(&suite.transaction, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAllocationRepo.On("FindAllocationByID", ctx, newAllocation.AllocationID).Return(&newAllocation, nil).Once()
	suite.mockTransactionRepo.On("UpdateSplit", ctx, mock.MatchedBy(func(s domain.TransactionSplit) bool {
		return s.SplitID == split.SplitID && s.AllocationID == newAllocation.AllocationID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateSplit(ctx, suite.userID, split.SplitID, req)

	suite.Require().NoError(err)
	suite.Equal(newAllocation.AllocationID, updated.AllocationID)
	suite.Equal(suite.userID, updated.LastUpdatedBy)

	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *SplitServiceTestSuite) TestUpdateSplit_SameAllocationSkipsLookup() {
	ctx := context.Background()
	split := domain.TransactionSplit{
		SplitID:       uuid.NewString(),
		TransactionID: suite.transaction.TransactionID,
		AllocationID:  suite.allocation.AllocationID,
		Amount:        decimal.NewFromInt(-90),
	}
	newAmount := decimal.NewFromInt(-45)
	req := dto.UpdateSplitRequest{Amount: &newAmount}

	suite.mockTransactionRepo.On("FindSplitByID", ctx, split.SplitID).Return(&split, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, suite.transaction.TransactionID).Return(&suite.transaction, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTransactionRepo.On("UpdateSplit", ctx, mock.AnythingOfType("domain.TransactionSplit")).Return(nil).Once()

	updated, err := suite.service.UpdateSplit(ctx, suite.userID, split.SplitID, req)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "FindAllocationByID", mock.Anything, mock.Anything)
}

func (suite *SplitServiceTestSuite) TestDeleteSplit_ReconciledTransactionRejected() {
	ctx := context.Background()
	reconciled := suite.transaction
	reconciled.IsReconciled = true
	split := domain.TransactionSplit{
		SplitID:       uuid.NewString(),
		TransactionID: reconciled.TransactionID,
		AllocationID:  suite.allocation.AllocationID,
		Amount:        decimal.NewFromInt(-90),
	}

	suite.mockTransactionRepo.On("FindSplitByID", ctx, split.SplitID).Return(&split, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, reconciled.TransactionID).Return(&reconciled, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()

	err := suite.service.DeleteSplit(ctx, suite.userID, split.SplitID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransactionReconciled)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "DeleteSplit", mock.Anything, mock.Anything)
}

func (suite *SplitServiceTestSuite) TestDeleteSplit_Success() {
	ctx := context.Background()
	split := domain.TransactionSplit{
		SplitID:       uuid.NewString(),
		TransactionID: suite.transaction.TransactionID,
		AllocationID:  suite.allocation.AllocationID,
		Amount:        decimal.NewFromInt(-90),
	}

	suite.mockTransactionRepo.On("FindSplitByID", ctx, split.SplitID).Return(&split, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionByID", ctx, suite.transaction.TransactionID).Return(&suite.transaction, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.userID, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockTransactionRepo.On("DeleteSplit", ctx, split.SplitID).Return(nil).Once()

	err := suite.service.DeleteSplit(ctx, suite.userID, split.SplitID)

	suite.Require().NoError(err)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *SplitServiceTestSuite) TestListSplitsByAllocation_OwnershipViaCategory() {
	ctx := context.Background()
	splits := []domain.TransactionSplit{
		{SplitID: uuid.NewString(), AllocationID: suite.allocation.AllocationID, Amount: decimal.NewFromInt(-30)},
	}
	category := domain.Category{CategoryID: suite.allocation.CategoryID, UserID: suite.userID, IsActive: true}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.allocation.AllocationID).Return(&suite.allocation, nil).Once()
	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.allocation.CategoryID).Return(&category, nil).Once()
	suite.mockTransactionRepo.On("ListSplitsByAllocation", ctx, suite.allocation.AllocationID, 20, (*string)(nil)).Return(splits, nil, nil).Once()

	found, nextToken, err := suite.service.ListSplitsByAllocation(ctx, suite.userID, suite.allocation.AllocationID, 0, nil)

	suite.Require().NoError(err)
	suite.Nil(nextToken)
	suite.Len(found, 1)
}

func (suite *SplitServiceTestSuite) TestListSplitsByAllocation_NotOwned() {
	ctx := context.Background()

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.allocation.AllocationID).Return(&suite.allocation, nil).Once()
	suite.mockCategorySvc.On("GetCategoryByID", ctx, suite.userID, suite.allocation.CategoryID).Return(nil, apperrors.ErrForbidden).Once()

	found, _, err := suite.service.ListSplitsByAllocation(ctx, suite.userID, suite.allocation.AllocationID, 0, nil)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "ListSplitsByAllocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SplitServiceTestSuite) TestListSplitsByMonth_InvalidPeriod() {
	ctx := context.Background()

	found, err := suite.service.ListSplitsByMonth(ctx, suite.userID, 13, 2025)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrInvalidPeriod)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "ListSplitsByMonth", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestSplitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SplitServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/core/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SumTransactionAmounts(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, balance, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, delta, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
	account         domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Checking",
		AccountType: "CHECKING",
		Balance:     decimal.NewFromInt(1000),
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_StartsWithZeroBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Savings", AccountType: "SAVINGS"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Balance.IsZero() && a.IsActive && a.UserID == suite.userID
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal("Savings", created.Name)
	suite.True(created.Balance.IsZero())
	suite.Equal(suite.userID, created.CreatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherUsersAccountForbidden() {
	ctx := context.Background()
	other := suite.account
	other.UserID = uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, other.AccountID).Return(&other, nil).Once()

	found, err := suite.service.GetAccountByID(ctx, suite.userID, other.AccountID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestRecalculateBalance_OverwritesCachedValue() {
	ctx := context.Background()
	recomputed := decimal.NewFromInt(940)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("SumTransactionAmounts", ctx, suite.account.AccountID).Return(recomputed, nil).Once()
	suite.mockAccountRepo.On("SetAccountBalance", ctx, suite.account.AccountID, recomputed, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	account, err := suite.service.RecalculateBalance(ctx, suite.userID, suite.account.AccountID)

	suite.Require().NoError(err)
	// Ledger-derived value wins over the cached one
	suite.True(account.Balance.Equal(recomputed))
	suite.Equal(suite.userID, account.LastUpdatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestRecalculateBalance_NoDriftStillPersists() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("SumTransactionAmounts", ctx, suite.account.AccountID).Return(suite.account.Balance, nil).Once()
	suite.mockAccountRepo.On("SetAccountBalance", ctx, suite.account.AccountID, suite.account.Balance, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	account, err := suite.service.RecalculateBalance(ctx, suite.userID, suite.account.AccountID)

	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.NewFromInt(1000)))
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	newName := "Everyday Checking"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.IsActive
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.userID, suite.account.AccountID, req)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(&suite.account, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.userID, suite.account.AccountID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

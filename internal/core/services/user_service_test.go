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
	"github.com/finbuckets/envelope_budget_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProvider(ctx context.Context, provider string, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, userID, deletedBy, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Ada",
		Email:    "  Ada@Example.COM ",
		Password: "correct horse battery staple",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ada@example.com" &&
			u.AuthProvider == domain.ProviderLocal &&
			u.IsActive &&
			u.PasswordHash != "" && u.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	// Email is normalized before storage
	suite.Equal("ada@example.com", user.Email)
	suite.Equal(user.UserID, user.CreatedBy)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_EmailTaken() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery staple",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrEmailTaken)
}

func (suite *UserServiceTestSuite) TestUpdateUser_Name() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := domain.User{UserID: userID, Name: "Ada", Email: "ada@example.com", IsActive: true}
	newName := "Ada L."
	req := dto.UpdateUserRequest{Name: &newName}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == userID && u.Name == newName
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal(userID, updated.LastUpdatedBy)
}

func (suite *UserServiceTestSuite) TestDeactivateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("DeactivateUser", ctx, userID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateProviderUser_ExistingUserReturned() {
	ctx := context.Background()
	existing := domain.User{
		UserID:         uuid.NewString(),
		Email:          "ada@example.com",
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: "google-sub-123",
		IsActive:       true,
	}

	suite.mockUserRepo.On("FindUserByProvider", ctx, string(domain.ProviderGoogle), "google-sub-123").Return(&existing, nil).Once()

	user, err := suite.service.FindOrCreateProviderUser(ctx, domain.ProviderGoogle, "google-sub-123", "ada@example.com", "Ada")

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateProviderUser_ProvisionsOnFirstSignIn() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByProvider", ctx, string(domain.ProviderGoogle), "google-sub-456").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle &&
			u.ProviderUserID == "google-sub-456" &&
			u.EmailVerified && u.IsActive
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateProviderUser(ctx, domain.ProviderGoogle, "google-sub-456", "Grace@Example.com", "Grace")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("grace@example.com", user.Email)
	suite.NotEmpty(user.UserID)

	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

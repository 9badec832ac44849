package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/finbuckets/envelope_budget_app/internal/utils"
)

var (
	ErrEmailTaken = errors.New("email is already registered")
)

// userService provides user management operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a local-auth user with a bcrypt-hashed password.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "", // self-registration
			LastUpdatedAt: now,
			LastUpdatedBy: "",
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of active users.
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser updates the user's profile fields.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeactivateUser soft-deletes a user.
func (s *userService) DeactivateUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeactivateUser(ctx, userID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// FindOrCreateProviderUser resolves a user by external provider identity,
// provisioning one on first sign-in.
func (s *userService) FindOrCreateProviderUser(ctx context.Context, provider domain.AuthProvider, providerUserID string, email string, name string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByProvider(ctx, string(provider), providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider user: %w", err)
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Name:           name,
		Email:          strings.ToLower(email),
		AuthProvider:   provider,
		ProviderUserID: providerUserID,
		EmailVerified:  true, // provider-asserted
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		logger.Error("Failed to provision provider user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}

	logger.Info("Provisioned new provider user", slog.String("user_id", newUser.UserID), slog.String("provider", string(provider)))
	return &newUser, nil
}

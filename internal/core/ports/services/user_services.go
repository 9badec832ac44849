package services

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
)

// UserReaderSvc defines read operations for users
type UserReaderSvc interface {
	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of active users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for users
type UserWriterSvc interface {
	// RegisterUser creates a new local-auth user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// UpdateUser updates the authenticated user's profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeactivateUser soft-deletes the authenticated user's account.
	DeactivateUser(ctx context.Context, userID string) error

	// FindOrCreateProviderUser resolves a user by external provider identity,
	// provisioning a new user on first sign-in.
	FindOrCreateProviderUser(ctx context.Context, provider domain.AuthProvider, providerUserID string, email string, name string) (*domain.User, error)
}

// UserSvcFacade combines all user service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

package repositories

import (
	"context"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, active or not.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProvider retrieves a user by external auth provider identity.
	FindUserByProvider(ctx context.Context, provider string, providerUserID string) (*domain.User, error)

	// FindUserByRefreshTokenHash retrieves the user holding the given hashed
	// refresh token.
	FindUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)

	// ListUsers retrieves a paginated list of active users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates mutable user fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hashed refresh token and its expiry.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error

	// DeactivateUser marks a user as inactive.
	DeactivateUser(ctx context.Context, userID string, deletedBy string, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

package repositories

import (
	"context"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategoriesByUser retrieves the categories owned by a user,
	// optionally including deactivated ones.
	ListCategoriesByUser(ctx context.Context, userID string, includeInactive bool) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates mutable category fields.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeactivateCategory soft-deletes a category. Categories are never hard
	// deleted so historical allocations remain resolvable.
	DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

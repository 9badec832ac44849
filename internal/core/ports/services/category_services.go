package services

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
)

// CategoryReaderSvc defines read operations for categories
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a category owned by the requesting user.
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves the requesting user's categories.
	ListCategories(ctx context.Context, userID string, includeInactive bool) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for categories
type CategoryWriterSvc interface {
	// CreateCategory creates a category for the requesting user.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// UpdateCategory updates mutable category fields.
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeactivateCategory soft-deletes a category.
	DeactivateCategory(ctx context.Context, userID string, categoryID string) error
}

// CategorySvcFacade combines all category service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}

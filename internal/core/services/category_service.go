package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
)

// categoryService provides category management operations.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// findOwnedCategory loads a category and verifies ownership.
func (s *categoryService) findOwnedCategory(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrForbidden, categoryID)
	}
	return category, nil
}

// GetCategoryByID retrieves a category owned by the requesting user.
func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	return s.findOwnedCategory(ctx, userID, categoryID)
}

// ListCategories retrieves the user's categories.
func (s *categoryService) ListCategories(ctx context.Context, userID string, includeInactive bool) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a category for the user.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Color:      req.Color,
		IsIncome:   req.IsIncome,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory updates mutable category fields.
func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.findOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeactivateCategory soft-deletes a category. Existing allocations keep
// referencing it.
func (s *categoryService) DeactivateCategory(ctx context.Context, userID string, categoryID string) error {
	if _, err := s.findOwnedCategory(ctx, userID, categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeactivateCategory(ctx, categoryID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate category: %w", err)
	}
	return nil
}

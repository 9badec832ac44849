package dto

import (
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Color    string `json:"color" binding:"omitempty,hexcolor"`
	IsIncome bool   `json:"isIncome"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color" binding:"omitempty,hexcolor"`
	IsActive *bool   `json:"isActive"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsIncome   bool   `json:"isIncome"`
	IsActive   bool   `json:"isActive"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: cat.CategoryID,
		Name:       cat.Name,
		Color:      cat.Color,
		IsIncome:   cat.IsIncome,
		IsActive:   cat.IsActive,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to ListCategoriesResponse DTO
func ToListCategoryResponse(categories []domain.Category) ListCategoriesResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return ListCategoriesResponse{
		Categories: res,
	}
}

package mapping

import (
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		UserID:      d.UserID,
		Name:        d.Name,
		Color:       d.Color,
		IsIncome:    d.IsIncome,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		UserID:      m.UserID,
		Name:        m.Name,
		Color:       m.Color,
		IsIncome:    m.IsIncome,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

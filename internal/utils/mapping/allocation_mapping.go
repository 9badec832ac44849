package mapping

import (
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/models"
)

// ToModelAllocation converts a domain CategoryAllocation to a model CategoryAllocation
func ToModelAllocation(d domain.CategoryAllocation) models.CategoryAllocation {
	return models.CategoryAllocation{
		AllocationID:         d.AllocationID,
		CategoryID:           d.CategoryID,
		Month:                d.Month,
		Year:                 d.Year,
		BudgetedAmount:       d.BudgetedAmount,
		IsActive:             d.IsActive,
		EditorName:           d.EditorName,
		EditedMemo:           d.EditedMemo,
		OldAmount:            d.OldAmount,
		PercentageAllocation: d.PercentageAllocation,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAllocation converts a model CategoryAllocation to a domain CategoryAllocation
func ToDomainAllocation(m models.CategoryAllocation) domain.CategoryAllocation {
	return domain.CategoryAllocation{
		AllocationID:         m.AllocationID,
		CategoryID:           m.CategoryID,
		Month:                m.Month,
		Year:                 m.Year,
		BudgetedAmount:       m.BudgetedAmount,
		IsActive:             m.IsActive,
		EditorName:           m.EditorName,
		EditedMemo:           m.EditedMemo,
		OldAmount:            m.OldAmount,
		PercentageAllocation: m.PercentageAllocation,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocationSlice converts a slice of model allocations to domain allocations
func ToDomainAllocationSlice(ms []models.CategoryAllocation) []domain.CategoryAllocation {
	ds := make([]domain.CategoryAllocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}

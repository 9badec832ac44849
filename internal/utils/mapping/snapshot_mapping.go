package mapping

import (
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/models"
)

// ToModelSnapshot converts a domain BudgetSnapshot to a model BudgetSnapshot
func ToModelSnapshot(d domain.BudgetSnapshot) models.BudgetSnapshot {
	return models.BudgetSnapshot{
		SnapshotID:     d.SnapshotID,
		UserID:         d.UserID,
		Month:          d.Month,
		Year:           d.Year,
		ReadyToAssign:  d.ReadyToAssign,
		TotalIncome:    d.TotalIncome,
		TotalAllocated: d.TotalAllocated,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSnapshot converts a model BudgetSnapshot to a domain BudgetSnapshot
func ToDomainSnapshot(m models.BudgetSnapshot) domain.BudgetSnapshot {
	return domain.BudgetSnapshot{
		SnapshotID:     m.SnapshotID,
		UserID:         m.UserID,
		Month:          m.Month,
		Year:           m.Year,
		ReadyToAssign:  m.ReadyToAssign,
		TotalIncome:    m.TotalIncome,
		TotalAllocated: m.TotalAllocated,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

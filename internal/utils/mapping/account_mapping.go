package mapping

import (
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		UserID:      d.UserID,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		Balance:     d.Balance,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		UserID:      m.UserID,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

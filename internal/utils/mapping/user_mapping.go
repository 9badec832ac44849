package mapping

import (
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                d.UserID,
		Name:                  d.Name,
		Email:                 d.Email,
		PasswordHash:          d.PasswordHash,
		AuthProvider:          string(d.AuthProvider),
		ProviderUserID:        d.ProviderUserID,
		EmailVerified:         d.EmailVerified,
		IsActive:              d.IsActive,
		RefreshTokenHash:      d.RefreshTokenHash,
		RefreshTokenExpiresAt: d.RefreshTokenExpiresAt,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                m.UserID,
		Name:                  m.Name,
		Email:                 m.Email,
		PasswordHash:          m.PasswordHash,
		AuthProvider:          domain.AuthProvider(m.AuthProvider),
		ProviderUserID:        m.ProviderUserID,
		EmailVerified:         m.EmailVerified,
		IsActive:              m.IsActive,
		RefreshTokenHash:      m.RefreshTokenHash,
		RefreshTokenExpiresAt: m.RefreshTokenExpiresAt,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

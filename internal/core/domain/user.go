package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an application user. All budgeting entities are reachable
// only through their owning user.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (UUID)
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"` // bcrypt; empty for OAuth-only users
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"` // External provider's subject, if any
	EmailVerified  bool         `json:"emailVerified"`
	IsActive       bool         `json:"isActive"`
	// Refresh token rotation state
	RefreshTokenHash      string     `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	AuditFields
}

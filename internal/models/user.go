package models

import "time"

// User mirrors the users table.
type User struct {
	UserID                string     `json:"userID"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	PasswordHash          string     `json:"-"`
	AuthProvider          string     `json:"authProvider"`
	ProviderUserID        string     `json:"-"`
	EmailVerified         bool       `json:"emailVerified"`
	IsActive              bool       `json:"isActive"`
	RefreshTokenHash      string     `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	AuditFields
}

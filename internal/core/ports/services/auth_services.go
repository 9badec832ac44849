package services

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/dto"
)

// AuthSvcFacade defines authentication operations: credential login,
// token refresh and logout.
type AuthSvcFacade interface {
	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error)

	// RefreshToken rotates the refresh token and issues a new pair.
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)

	// Logout invalidates the user's refresh token.
	Logout(ctx context.Context, userID string) error
}

// GoogleOAuthSvcFacade defines the Google sign-in code exchange flow.
type GoogleOAuthSvcFacade interface {
	// ExchangeCode exchanges an authorization code for Google profile
	// details, provisions the user if needed, and issues tokens.
	ExchangeCode(ctx context.Context, code string, redirectURI string) (*dto.TokenPairResponse, error)
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/finbuckets/envelope_budget_app/internal/platform/config"
)

// googleUserInfo mirrors the fields returned by Google's userinfo endpoint.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// googleOAuthService implements the Google sign-in code exchange flow.
type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
	userSvc      portssvc.UserSvcFacade
	userRepo     portsrepo.UserRepositoryFacade
}

// NewGoogleOAuthService creates a new Google OAuth service.
func NewGoogleOAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		userSvc:  userSvc,
		userRepo: userRepo,
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)

// ExchangeCode exchanges an authorization code with Google, resolves the
// profile, provisions the user on first sign-in, and issues a token pair.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string, redirectURI string) (*dto.TokenPairResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured")
	}

	opts := []oauth2.AuthCodeOption{}
	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}

	token, err := s.oauth2Config.Exchange(ctx, code, opts...)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	info, err := s.resolveUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userSvc.FindOrCreateProviderUser(ctx, domain.ProviderGoogle, info.ID, info.Email, info.Name)
	if err != nil {
		return nil, err
	}

	return issueTokenPair(ctx, s.cfg, s.userRepo, user)
}

// resolveUserInfo prefers the verified ID token payload and falls back to the
// userinfo endpoint when none was returned.
func (s *googleOAuthService) resolveUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		payload, err := idtoken.Validate(ctx, rawIDToken, s.cfg.GoogleClientID)
		if err != nil {
			return nil, fmt.Errorf("google ID token validation failed: %w", err)
		}
		info := &googleUserInfo{ID: payload.Subject}
		if email, ok := payload.Claims["email"].(string); ok {
			info.Email = email
		}
		if name, ok := payload.Claims["name"].(string); ok {
			info.Name = name
		}
		return info, nil
	}

	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	return &info, nil
}

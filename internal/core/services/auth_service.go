package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/finbuckets/envelope_budget_app/internal/platform/config"
	"github.com/finbuckets/envelope_budget_app/internal/utils"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// authService handles credential login, token issuance and refresh rotation.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// issueTokenPair mints an access token and a rotated refresh token for the
// user, persisting the refresh token hash. Shared by login, refresh and the
// OAuth code exchange.
func issueTokenPair(ctx context.Context, cfg *config.Config, userRepo portsrepo.UserWriter, user *domain.User) (*dto.TokenPairResponse, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshExpiry := time.Now().UTC().Add(cfg.RefreshTokenExpiryDuration)
	refreshHash := utils.HashRefreshToken(rawRefreshToken)

	if err := userRepo.UpdateRefreshToken(ctx, user.UserID, refreshHash, &refreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefreshToken,
		ExpiresIn:    int(cfg.JWTExpiryDuration.Seconds()),
		User:         dto.ToUserResponse(user),
	}, nil
}

// Login verifies credentials and issues a token pair.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if user.AuthProvider != domain.ProviderLocal || user.PasswordHash == "" {
		// OAuth-only accounts cannot log in with a password
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Password mismatch on login", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}

	return issueTokenPair(ctx, s.cfg, s.userRepo, user)
}

// RefreshToken validates the presented refresh token and rotates it.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.findUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if user.RefreshTokenExpiresAt == nil || time.Now().After(*user.RefreshTokenExpiresAt) {
		logger.Info("Refresh token expired", slog.String("user_id", user.UserID))
		return nil, ErrRefreshTokenExpired
	}

	return issueTokenPair(ctx, s.cfg, s.userRepo, user)
}

// findUserByRefreshToken resolves the owning user from the token hash.
func (s *authService) findUserByRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	hash := utils.HashRefreshToken(refreshToken)
	user, err := s.userRepo.FindUserByRefreshTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve refresh token: %w", err)
	}
	return user, nil
}

// Logout clears the user's stored refresh token.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

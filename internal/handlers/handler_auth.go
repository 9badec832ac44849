package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/core/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	userService portssvc.UserSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{
		authService: as,
		userService: us,
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a new user account with email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			logger.Warn("Registration rejected, email taken")
			c.JSON(http.StatusConflict, ErrorResponse{Error: services.ErrEmailTaken.Error()})
			return
		}
		respondServiceError(c, logger, err, "Failed to register user")
		return
	}

	logger.Info("User registered", slog.String("user_id", newUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, apperrors.ErrNotFound) {
			// Same response for unknown email and wrong password
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: services.ErrInvalidCredentials.Error()})
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// refresh godoc
// @Summary Refresh tokens
// @Description Rotates the refresh token and returns a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired refresh token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, services.ErrRefreshTokenExpired) {
			logger.Warn("Refresh token rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired refresh token"})
			return
		}
		logger.Error("Token refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// logout godoc
// @Summary Log out
// @Description Invalidates the caller's refresh token.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to log out")
		return
	}

	logger.Info("User logged out", slog.String("user_id", userID))
	c.Status(http.StatusNoContent)
}

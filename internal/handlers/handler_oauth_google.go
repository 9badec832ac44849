package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles the Google sign-in callback.
type googleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthSvcFacade
}

// newGoogleOAuthHandler creates a new googleOAuthHandler.
func newGoogleOAuthHandler(os portssvc.GoogleOAuthSvcFacade) *googleOAuthHandler {
	return &googleOAuthHandler{oauthService: os}
}

// googleCallback godoc
// @Summary Google sign-in callback
// @Description Exchanges a Google authorization code for an application token pair, provisioning the user on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param callback body dto.GoogleCallbackRequest true "Authorization code"
// @Success 200 {object} dto.TokenPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Code exchange rejected by Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [post]
func (h *googleOAuthHandler) googleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	tokens, err := h.oauthService.ExchangeCode(c.Request.Context(), req.Code, req.RedirectURI)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

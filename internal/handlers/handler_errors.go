package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/services"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the generic error payload returned by handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondServiceError translates service errors into HTTP responses. The
// fallback message is returned for unexpected errors so internals never leak.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, services.ErrTransactionReconciled):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidPeriod),
		errors.Is(err, services.ErrNoSplits),
		errors.Is(err, services.ErrSplitSumMismatch),
		errors.Is(err, services.ErrAllocationNotFound),
		errors.Is(err, services.ErrAllocationInactive),
		errors.Is(err, services.ErrAccountNotActive),
		errors.Is(err, services.ErrCategoryNotActive):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

package handlers

import (
	"net/http"

	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers routes related to users.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/me", h.getMe)
		users.PUT("/me", h.updateMe)
		users.DELETE("/me", h.deleteMe)
	}
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a paginated list of active users
// @Tags users
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// getMe godoc
// @Summary Get the authenticated user
// @Description Retrieves the profile of the logged-in user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMe godoc
// @Summary Update the authenticated user
// @Description Updates the profile of the logged-in user
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (h *userHandler) updateMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteMe godoc
// @Summary Deactivate the authenticated user
// @Description Soft-deletes the logged-in user's account and invalidates their refresh token
// @Tags users
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (h *userHandler) deleteMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate user")
		return
	}

	c.Status(http.StatusNoContent)
}

package dto

import (
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
)

// RegisterUserRequest defines the data needed to create a local-auth user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name"` // Only name is updatable for now
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID        string `json:"userID"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AuthProvider  string `json:"authProvider"`
	EmailVerified bool   `json:"emailVerified"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		AuthProvider:  string(user.AuthProvider),
		EmailVerified: user.EmailVerified,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}

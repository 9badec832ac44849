package dto

import (
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CREDIT_CARD CASH"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`     // Optional: New name
	IsActive *bool   `json:"isActive"` // Optional: New active status
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

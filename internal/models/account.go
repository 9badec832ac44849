package models

import "github.com/shopspring/decimal"

// AccountType classifies a money account.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditCard AccountType = "CREDIT_CARD"
	Cash       AccountType = "CASH"
)

// Account mirrors the accounts table. Balance is the denormalized running
// sum of posted transaction amounts.
type Account struct {
	AccountID   string          `json:"accountID"`
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

package domain

import "github.com/shopspring/decimal"

// AccountType classifies a money account.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditCard AccountType = "CREDIT_CARD"
	Cash       AccountType = "CASH"
)

// Account represents a real-world money account owned by one user.
// Balance is a denormalized running sum of posted transaction amounts; it is
// maintained in the same unit of work as every ledger write and must always
// equal the recomputation from the transaction ledger.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`    // FK -> User (Not Null)
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"` // Cached; signed
	IsActive    bool            `json:"isActive"`
	AuditFields
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table. Amount is signed: positive
// inflow, negative outflow.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Payee           string          `json:"payee"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	IsReconciled    bool            `json:"isReconciled"`
	AuditFields
}

// TransactionSplit mirrors the transaction_splits table. The FK to
// transactions carries ON DELETE CASCADE.
type TransactionSplit struct {
	SplitID       string          `json:"splitID"`
	TransactionID string          `json:"transactionID"`
	AllocationID  string          `json:"allocationID"`
	Amount        decimal.Decimal `json:"amount"`
	IsIncome      bool            `json:"isIncome"`
	Notes         string          `json:"notes"`
	// Joined from the parent transaction where queries need ordering by date.
	TransactionDate time.Time `json:"transactionDate,omitempty"`
	AuditFields
}

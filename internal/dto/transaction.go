package dto

import (
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSplitRequest defines one split inside a create-transaction request,
// or a standalone split appended to an existing transaction.
type CreateSplitRequest struct {
	AllocationID string          `json:"allocationID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	IsIncome     bool            `json:"isIncome"`
	Notes        string          `json:"notes"`
}

// CreateTransactionRequest defines the data needed to post a transaction
// together with its splits. At least one split is required and the split
// amounts must sum to the transaction amount.
type CreateTransactionRequest struct {
	AccountID       string               `json:"accountID" binding:"required"`
	Payee           string               `json:"payee" binding:"required"`
	Amount          decimal.Decimal      `json:"amount" binding:"required"`
	TransactionDate time.Time            `json:"transactionDate" binding:"required"`
	Splits          []CreateSplitRequest `json:"splits" binding:"required,min=1,dive"`
}

// UpdateTransactionRequest defines the data allowed for updating a
// transaction. Use pointers to distinguish omitted fields.
type UpdateTransactionRequest struct {
	Payee           *string          `json:"payee"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionDate *time.Time       `json:"transactionDate"`
	IsReconciled    *bool            `json:"isReconciled"`
}

// UpdateSplitRequest defines the data allowed for updating a split.
type UpdateSplitRequest struct {
	AllocationID *string          `json:"allocationID"`
	Amount       *decimal.Decimal `json:"amount"`
	IsIncome     *bool            `json:"isIncome"`
	Notes        *string          `json:"notes"`
}

// SplitResponse defines the data returned for a transaction split.
type SplitResponse struct {
	SplitID         string          `json:"splitID"`
	TransactionID   string          `json:"transactionID"`
	AllocationID    string          `json:"allocationID"`
	Amount          decimal.Decimal `json:"amount"`
	IsIncome        bool            `json:"isIncome"`
	Notes           string          `json:"notes"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Payee           string          `json:"payee"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	IsReconciled    bool            `json:"isReconciled"`
	Splits          []SplitResponse `json:"splits,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListSplitsResponse wraps a page of splits.
type ListSplitsResponse struct {
	Splits    []SplitResponse `json:"splits"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToSplitResponse converts a domain.TransactionSplit to SplitResponse DTO
func ToSplitResponse(split *domain.TransactionSplit) SplitResponse {
	return SplitResponse{
		SplitID:         split.SplitID,
		TransactionID:   split.TransactionID,
		AllocationID:    split.AllocationID,
		Amount:          split.Amount,
		IsIncome:        split.IsIncome,
		Notes:           split.Notes,
		TransactionDate: split.TransactionDate,
	}
}

// ToSplitResponses converts a slice of domain.TransactionSplit to []SplitResponse.
func ToSplitResponses(splits []domain.TransactionSplit) []SplitResponse {
	res := make([]SplitResponse, len(splits))
	for i, split := range splits {
		res[i] = ToSplitResponse(&split)
	}
	return res
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Payee:           txn.Payee,
		Amount:          txn.Amount,
		TransactionDate: txn.TransactionDate,
		IsReconciled:    txn.IsReconciled,
		Splits:          ToSplitResponses(txn.Splits),
		CreatedAt:       txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a page of domain.Transaction to ListTransactionsResponse DTO.
func ToListTransactionResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{
		Transactions: res,
		NextToken:    nextToken,
	}
}

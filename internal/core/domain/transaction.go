package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a posted ledger entry against one account. Amount is signed:
// positive for inflows, negative for outflows. A transaction is created with
// at least one split and is mutable until reconciled.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	AccountID       string          `json:"accountID"`     // FK -> Account (Not Null)
	Payee           string          `json:"payee"`
	Amount          decimal.Decimal `json:"amount"`          // Signed
	TransactionDate time.Time       `json:"transactionDate"` // Stored UTC
	IsReconciled    bool            `json:"isReconciled"`
	AuditFields
	Splits []TransactionSplit `json:"splits,omitempty"`
}

// TransactionSplit attributes a portion of a transaction's amount to one
// category allocation. Many splits across many transactions may reference the
// same allocation.
type TransactionSplit struct {
	SplitID       string          `json:"splitID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction (Not Null)
	AllocationID  string          `json:"allocationID"`  // FK -> CategoryAllocation (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Signed, consistent with the transaction
	IsIncome      bool            `json:"isIncome"`
	Notes         string          `json:"notes"`
	// Populated from the parent transaction on reads that join it.
	TransactionDate time.Time `json:"transactionDate,omitempty"`
	AuditFields
}

// ValidateSplitSum checks that the splits' amounts sum exactly to the
// transaction amount. Used on the atomic create-with-splits path.
func (t Transaction) ValidateSplitSum(splits []TransactionSplit) error {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(t.Amount) {
		return fmt.Errorf("splits sum %s does not equal transaction amount %s", sum.String(), t.Amount.String())
	}
	return nil
}

// NormalizeToUTC reinterprets t's wall-clock fields as UTC without
// converting. A caller supplying a local time has it treated as UTC; this
// keeps a single-timezone deployment free of drift.
func NormalizeToUTC(t time.Time) time.Time {
	if t.Location() == time.UTC {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

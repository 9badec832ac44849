package mapping

import (
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Payee:           d.Payee,
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		IsReconciled:    d.IsReconciled,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Payee:           m.Payee,
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		IsReconciled:    m.IsReconciled,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelSplit converts a domain TransactionSplit to a model TransactionSplit
func ToModelSplit(d domain.TransactionSplit) models.TransactionSplit {
	return models.TransactionSplit{
		SplitID:         d.SplitID,
		TransactionID:   d.TransactionID,
		AllocationID:    d.AllocationID,
		Amount:          d.Amount,
		IsIncome:        d.IsIncome,
		Notes:           d.Notes,
		TransactionDate: d.TransactionDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSplit converts a model TransactionSplit to a domain TransactionSplit
func ToDomainSplit(m models.TransactionSplit) domain.TransactionSplit {
	return domain.TransactionSplit{
		SplitID:         m.SplitID,
		TransactionID:   m.TransactionID,
		AllocationID:    m.AllocationID,
		Amount:          m.Amount,
		IsIncome:        m.IsIncome,
		Notes:           m.Notes,
		TransactionDate: m.TransactionDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSplitSlice converts a slice of model splits to domain splits
func ToDomainSplitSlice(ms []models.TransactionSplit) []domain.TransactionSplit {
	ds := make([]domain.TransactionSplit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSplit(m)
	}
	return ds
}

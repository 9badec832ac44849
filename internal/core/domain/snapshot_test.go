package domain_test

import (
	"testing"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateReadyToAssign(t *testing.T) {
	tests := []struct {
		name           string
		prev           *domain.BudgetSnapshot
		totalIncome    decimal.Decimal
		totalAllocated decimal.Decimal
		want           decimal.Decimal
	}{
		{
			name:           "no previous month means zero carry-in",
			prev:           nil,
			totalIncome:    decimal.NewFromInt(1000),
			totalAllocated: decimal.NewFromInt(800),
			want:           decimal.NewFromInt(200),
		},
		{
			name:           "positive carry-in adds to the month",
			prev:           &domain.BudgetSnapshot{ReadyToAssign: decimal.NewFromInt(50)},
			totalIncome:    decimal.NewFromInt(1000),
			totalAllocated: decimal.NewFromInt(800),
			want:           decimal.NewFromInt(250),
		},
		{
			name:           "overallocation goes negative",
			prev:           nil,
			totalIncome:    decimal.NewFromInt(500),
			totalAllocated: decimal.NewFromInt(700),
			want:           decimal.NewFromInt(-200),
		},
		{
			name:           "negative carry-in propagates",
			prev:           &domain.BudgetSnapshot{ReadyToAssign: decimal.NewFromInt(-200)},
			totalIncome:    decimal.NewFromInt(100),
			totalAllocated: decimal.NewFromInt(50),
			want:           decimal.NewFromInt(-150),
		},
		{
			name:           "empty month carries the balance forward untouched",
			prev:           &domain.BudgetSnapshot{ReadyToAssign: decimal.NewFromInt(75)},
			totalIncome:    decimal.Zero,
			totalAllocated: decimal.Zero,
			want:           decimal.NewFromInt(75),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.CalculateReadyToAssign(tt.prev, tt.totalIncome, tt.totalAllocated)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestBudgetSnapshot_Period(t *testing.T) {
	s := domain.BudgetSnapshot{Month: 6, Year: 2025}
	assert.Equal(t, domain.Period{Month: 6, Year: 2025}, s.Period())
}

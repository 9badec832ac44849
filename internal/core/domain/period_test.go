package domain_test

import (
	"testing"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewPeriod(t *testing.T) {
	tests := []struct {
		name    string
		month   int
		year    int
		wantErr bool
	}{
		{"valid mid-range", 6, 2025, false},
		{"first month of window", 1, 2000, false},
		{"last month of window", 12, 2100, false},
		{"month zero", 0, 2025, true},
		{"month thirteen", 13, 2025, true},
		{"year below window", 6, 1999, true},
		{"year above window", 6, 2101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := domain.NewPeriod(tt.month, tt.year)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.month, p.Month)
				assert.Equal(t, tt.year, p.Year)
			}
		})
	}
}

func TestPeriod_PreviousAndNext(t *testing.T) {
	tests := []struct {
		name     string
		period   domain.Period
		previous domain.Period
		next     domain.Period
	}{
		{
			name:     "mid-year",
			period:   domain.Period{Month: 6, Year: 2025},
			previous: domain.Period{Month: 5, Year: 2025},
			next:     domain.Period{Month: 7, Year: 2025},
		},
		{
			name:     "january wraps to prior december",
			period:   domain.Period{Month: 1, Year: 2025},
			previous: domain.Period{Month: 12, Year: 2024},
			next:     domain.Period{Month: 2, Year: 2025},
		},
		{
			name:     "december wraps to next january",
			period:   domain.Period{Month: 12, Year: 2025},
			previous: domain.Period{Month: 11, Year: 2025},
			next:     domain.Period{Month: 1, Year: 2026},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.previous, tt.period.Previous())
			assert.Equal(t, tt.next, tt.period.Next())
		})
	}
}

func TestPeriod_Ordering(t *testing.T) {
	earlier := domain.Period{Month: 12, Year: 2024}
	later := domain.Period{Month: 1, Year: 2025}

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.After(earlier))
}

func TestPeriod_Bounds(t *testing.T) {
	p := domain.Period{Month: 6, Year: 2025}

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), p.Start())
	// End is exclusive: the start of the next month
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), p.End())

	december := domain.Period{Month: 12, Year: 2025}
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), december.End())
}

func TestPeriodOf(t *testing.T) {
	zone := time.FixedZone("UTC-8", -8*3600)
	// 2025-06-30 23:00 UTC-8 is 2025-07-01 07:00 UTC
	p := domain.PeriodOf(time.Date(2025, 6, 30, 23, 0, 0, 0, zone))

	assert.Equal(t, domain.Period{Month: 7, Year: 2025}, p)
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "2025-06", domain.Period{Month: 6, Year: 2025}.String())
	assert.Equal(t, "2024-12", domain.Period{Month: 12, Year: 2024}.String())
}

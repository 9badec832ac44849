package domain

import (
	"fmt"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
)

// Budget periods are calendar months. Years outside this window are rejected
// rather than clamped.
const (
	MinBudgetYear = 2000
	MaxBudgetYear = 2100
)

// Period identifies one budgeting month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPeriod builds a validated Period.
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the Period containing t (interpreted in UTC).
func PeriodOf(t time.Time) Period {
	u := t.UTC()
	return Period{Month: int(u.Month()), Year: u.Year()}
}

// Validate checks the month and year ranges.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d outside 1-12", apperrors.ErrInvalidPeriod, p.Month)
	}
	if p.Year < MinBudgetYear || p.Year > MaxBudgetYear {
		return fmt.Errorf("%w: year %d outside %d-%d", apperrors.ErrInvalidPeriod, p.Year, MinBudgetYear, MaxBudgetYear)
	}
	return nil
}

// Previous returns the preceding calendar month.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// Next returns the following calendar month.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// Before reports whether p is chronologically before other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// After reports whether p is chronologically after other.
func (p Period) After(other Period) bool {
	return other.Before(p)
}

// Start returns midnight UTC on the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the start of the following period (exclusive bound).
func (p Period) End() time.Time {
	return p.Next().Start()
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

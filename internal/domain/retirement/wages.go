// Package retirement estimates statutory severance pay and defined
// contribution pension amounts from trailing monthly gross pay.
package retirement

import (
	"time"

	"hrpay/internal/domain/apperr"
)

// TrailingWindowMonths is the number of calendar months averaged for the
// daily wage and the DC base income.
const TrailingWindowMonths = 3

// MonthWage is the gross pay of one calendar month.
type MonthWage struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Gross int64      `json:"gross"`
}

func (m MonthWage) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days is the number of calendar days in the month.
func (m MonthWage) Days() int {
	return m.Start().AddDate(0, 1, -1).Day()
}

// TrailingMonths returns the n calendar months before (year, month), oldest
// first, with zero gross.
func TrailingMonths(year int, month time.Month, n int) []MonthWage {
	if n <= 0 {
		return nil
	}
	ref := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	months := make([]MonthWage, n)
	for i := 0; i < n; i++ {
		start := ref.AddDate(0, -(n - i), 0)
		months[i] = MonthWage{Year: start.Year(), Month: start.Month()}
	}
	return months
}

func totalGross(months []MonthWage) (int64, error) {
	var total int64
	for _, m := range months {
		if m.Gross < 0 {
			return 0, apperr.Invalid("gross", m.Gross, "must not be negative")
		}
		if m.Month < time.January || m.Month > time.December {
			return 0, apperr.Invalid("month", int(m.Month), "must be 1-12")
		}
		total += m.Gross
	}
	return total, nil
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

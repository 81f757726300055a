package leave

import (
	"time"

	"hrpay/internal/domain/apperr"
)

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	start, end = civilDate(start), civilDate(end)
	if end.Before(start) {
		return 0, apperr.Invalid("endDate", end.Format(time.DateOnly), "before start date")
	}
	return float64(int(end.Sub(start).Hours()/24) + 1), nil
}

// CalculateRequestDays returns inclusive leave day count with optional half-day start/end boundaries.
func CalculateRequestDays(start, end time.Time, startHalf, endHalf bool) (float64, error) {
	days, err := CalculateDays(start, end)
	if err != nil {
		return 0, err
	}

	sameDay := civilDate(start).Equal(civilDate(end))
	if sameDay && startHalf && endHalf {
		return 0, apperr.Invalid("halfDay", "start+end", "invalid half-day range")
	}

	if startHalf {
		days -= 0.5
	}
	if endHalf {
		days -= 0.5
	}
	if days <= 0 {
		return 0, apperr.Invalid("halfDay", days, "invalid half-day range")
	}
	return days, nil
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

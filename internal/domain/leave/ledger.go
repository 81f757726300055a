package leave

import "time"

const (
	// FirstYearMonthlyCap bounds the one-day-per-month accrual of the first year.
	FirstYearMonthlyCap = 11
	BaseAnnualDays      = 15
	// MaxAnnualDays is the statutory ceiling including seniority days.
	MaxAnnualDays = 25
)

type Balance struct {
	Year        int     `json:"year"`
	Entitlement float64 `json:"entitlement"`
	Used        float64 `json:"used"`
	Remaining   float64 `json:"remaining"`
}

// CompletedMonths counts whole months from join to reference. A join day
// missing from a shorter month completes on that month's last day.
func CompletedMonths(joinDate, referenceDate time.Time) int {
	join, ref := civilDate(joinDate), civilDate(referenceDate)
	if ref.Before(join) {
		return 0
	}
	months := (ref.Year()-join.Year())*12 + int(ref.Month()-join.Month())
	if months > 0 && addMonthsClamped(join, months).After(ref) {
		months--
	}
	return months
}

func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

// TotalAnnualLeave is the entitlement on referenceDate. The first year earns
// one day per completed month; from the first anniversary the base 15 days
// grow by one per further two full years.
func TotalAnnualLeave(joinDate, referenceDate time.Time) float64 {
	months := CompletedMonths(joinDate, referenceDate)
	if months < 12 {
		return float64(min(months, FirstYearMonthlyCap))
	}
	years := months / 12
	return float64(min(BaseAnnualDays+(years-1)/2, MaxAnnualDays))
}

// UsedAnnualLeave sums annual-type days of approved or pending records that
// start in year.
func UsedAnnualLeave(records []Record, year int) float64 {
	var used float64
	for _, record := range records {
		if record.Counts() && record.StartDate.Year() == year {
			used += record.Days
		}
	}
	return used
}

func Summary(joinDate, referenceDate time.Time, records []Record) Balance {
	balance := Balance{
		Year:        referenceDate.Year(),
		Entitlement: TotalAnnualLeave(joinDate, referenceDate),
		Used:        UsedAnnualLeave(records, referenceDate.Year()),
	}
	balance.Remaining = max(0, balance.Entitlement-balance.Used)
	return balance
}

package retirement

import (
	"time"

	"hrpay/internal/domain/apperr"
	"hrpay/internal/domain/money"
)

const (
	// EligibilityDays is the minimum continuous service for severance pay.
	EligibilityDays = 365

	daysPerYear          = 365
	severanceDaysPerYear = 30
)

type Method string

const (
	MethodAverage  Method = "AVERAGE"
	MethodOrdinary Method = "ORDINARY"
)

type SeveranceInput struct {
	HireDate          time.Time
	ReferenceDate     time.Time
	BaseSalary        int64
	RegularAllowances int64
	Trailing          []MonthWage
}

// SeveranceEstimate is a read-only view. An ineligible estimate still
// carries the computed wages; only SeverancePay is zero.
type SeveranceEstimate struct {
	ServiceDays         int         `json:"serviceDays"`
	AverageDailyWage    int64       `json:"averageDailyWage"`
	OrdinaryDailyWage   int64       `json:"ordinaryDailyWage"`
	ApplicableDailyWage int64       `json:"applicableDailyWage"`
	Method              Method      `json:"method"`
	Eligible            bool        `json:"eligible"`
	SeverancePay        int64       `json:"severancePay"`
	Months              []MonthWage `json:"months"`
}

// ServiceDays counts calendar days from hire to reference, both inclusive.
func ServiceDays(hireDate, referenceDate time.Time) int {
	hire, ref := civilDate(hireDate), civilDate(referenceDate)
	if ref.Before(hire) {
		return 0
	}
	return int(ref.Sub(hire).Hours()/24) + 1
}

// AverageDailyWage is the trailing gross divided by the calendar days of the
// same months, floored.
func AverageDailyWage(months []MonthWage) (int64, error) {
	total, err := totalGross(months)
	if err != nil {
		return 0, err
	}
	var days int64
	for _, m := range months {
		days += int64(m.Days())
	}
	return money.FloorDiv(total, days), nil
}

// OrdinaryDailyWage annualizes the fixed monthly pay over 365 days.
func OrdinaryDailyWage(baseSalary, regularAllowances int64) int64 {
	return money.MulRatioFloor(baseSalary+regularAllowances, 12, daysPerYear)
}

func EstimateSeverance(in SeveranceInput) (SeveranceEstimate, error) {
	if in.HireDate.IsZero() {
		return SeveranceEstimate{}, apperr.Invalid("hireDate", in.HireDate, "required")
	}
	if civilDate(in.ReferenceDate).Before(civilDate(in.HireDate)) {
		return SeveranceEstimate{}, apperr.Invalid("referenceDate", in.ReferenceDate.Format(time.DateOnly), "before hire date")
	}
	if in.BaseSalary < 0 || in.RegularAllowances < 0 {
		return SeveranceEstimate{}, apperr.Invalid("baseSalary", in.BaseSalary+in.RegularAllowances, "must not be negative")
	}

	average, err := AverageDailyWage(in.Trailing)
	if err != nil {
		return SeveranceEstimate{}, err
	}

	est := SeveranceEstimate{
		ServiceDays:       ServiceDays(in.HireDate, in.ReferenceDate),
		AverageDailyWage:  average,
		OrdinaryDailyWage: OrdinaryDailyWage(in.BaseSalary, in.RegularAllowances),
		Months:            in.Trailing,
	}
	est.ApplicableDailyWage, est.Method = est.AverageDailyWage, MethodAverage
	if est.OrdinaryDailyWage > est.AverageDailyWage {
		est.ApplicableDailyWage, est.Method = est.OrdinaryDailyWage, MethodOrdinary
	}

	est.Eligible = est.ServiceDays >= EligibilityDays
	if est.Eligible {
		est.SeverancePay = money.MulRatioFloor(est.ApplicableDailyWage*severanceDaysPerYear, int64(est.ServiceDays), daysPerYear)
	}
	return est, nil
}

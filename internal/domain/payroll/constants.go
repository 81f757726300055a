package payroll

import "hrpay/internal/domain/money"

type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "MONTHLY"
	SalaryTypeHourly  SalaryType = "HOURLY"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusConfirmed Status = "CONFIRMED"
)

const (
	// MonthlyStandardHours is 40h/week plus paid weekly rest, averaged per month.
	MonthlyStandardHours = 209

	MealAllowanceExemptCap      = 200_000
	TransportAllowanceExemptCap = 200_000

	TaxRoundingUnit = 10

	ChildCreditOne      = 12_500
	ChildCreditTwo      = 29_160
	ChildCreditThree    = 54_160
	ChildCreditPerExtra = 25_000

	CaveatAboveTopBracket = "taxable salary above the withholding table; excess taxed at a flat marginal rate"
)

var (
	OvertimeMultiplier  = money.MustRate("1.5")
	NightWorkPremium    = money.MustRate("0.5")
	HolidayRegularRate  = money.MustRate("1.5")
	HolidayExcessRate   = money.MustRate("2.0")
	SubstitutedRegular  = money.MustRate("1.0")
	SubstitutedExcess   = money.MustRate("1.5")
	LocalIncomeTaxRate  = money.MustRate("0.1")
	TopBracketExcessTax = money.MustRate("0.35")
)

// Rates are the social-insurance parameters of one contribution year.
type Rates struct {
	PensionRate      money.Rate
	PensionBaseFloor int64
	PensionBaseCap   int64
	HealthRate       money.Rate
	LongTermCareRate money.Rate
	EmploymentRate   money.Rate
}

// DefaultRates are the employee-side rates in force from July 2024.
func DefaultRates() Rates {
	return Rates{
		PensionRate:      money.MustRate("0.045"),
		PensionBaseFloor: 390_000,
		PensionBaseCap:   6_170_000,
		HealthRate:       money.MustRate("0.03545"),
		LongTermCareRate: money.MustRate("0.1295"),
		EmploymentRate:   money.MustRate("0.009"),
	}
}

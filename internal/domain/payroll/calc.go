package payroll

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/apperr"
	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/money"
	"hrpay/internal/domain/taxtable"
)

// Calculator composes monthly pay. The withholding table and insurance rates
// are injected so a different tax year can be swapped in without globals.
type Calculator struct {
	table *taxtable.Table
	rates Rates
}

func NewCalculator(table *taxtable.Table, rates Rates) *Calculator {
	return &Calculator{table: table, rates: rates}
}

func (c *Calculator) Table() *taxtable.Table {
	return c.table
}

// HourlyRate is base/209 for monthly pay and the base itself for hourly pay.
// Allowances and the fixed overtime block are not part of the basis.
func HourlyRate(p Profile) int64 {
	if p.SalaryType == SalaryTypeHourly {
		return p.BaseSalary
	}
	return money.FloorDiv(p.BaseSalary, MonthlyStandardHours)
}

var straightTime = decimal.NewFromInt(1)

// premium returns floor(rate * minutes/60 * multiplier).
func premium(hourlyRate int64, minutes int, multiplier money.Rate) int64 {
	if minutes <= 0 || hourlyRate <= 0 {
		return 0
	}
	return decimal.NewFromInt(hourlyRate).
		Mul(decimal.NewFromInt(int64(minutes))).
		Mul(multiplier).
		Div(decimal.NewFromInt(60)).
		Floor().
		IntPart()
}

func OvertimePay(hourlyRate int64, minutes int) int64 {
	return premium(hourlyRate, minutes, OvertimeMultiplier)
}

// NightWorkPay is the additional half-rate for hours between 22:00 and 06:00.
func NightWorkPay(hourlyRate int64, minutes int) int64 {
	return premium(hourlyRate, minutes, NightWorkPremium)
}

// HolidayPay prices holiday work. On a substituted holiday the first eight
// hours are ordinary time; otherwise they carry the holiday premium.
func HolidayPay(hourlyRate int64, minutes attendance.HolidayMinutes, substituted bool) int64 {
	regular, excess := HolidayRegularRate, HolidayExcessRate
	if substituted {
		regular, excess = SubstitutedRegular, SubstitutedExcess
	}
	return premium(hourlyRate, minutes.Regular, regular) + premium(hourlyRate, minutes.Excess, excess)
}

// VariablePremiums prices the month's attendance. Fixed-overtime employees
// get none; their flat block covers this work.
func VariablePremiums(p Profile, hourlyRate int64, totals attendance.MonthlyTotals) Premiums {
	if p.FixedOvertime {
		return Premiums{}
	}
	return Premiums{
		OvertimeMinutes: totals.OvertimeMinutes,
		NightMinutes:    totals.NightWorkMinutes,
		HolidayMinutes:  totals.Holiday.Total() + totals.SubstitutedHoliday.Total(),
		OvertimePay:     OvertimePay(hourlyRate, totals.OvertimeMinutes),
		NightPay:        NightWorkPay(hourlyRate, totals.NightWorkMinutes),
		HolidayPay: HolidayPay(hourlyRate, totals.Holiday, false) +
			HolidayPay(hourlyRate, totals.SubstitutedHoliday, true),
	}
}

// BasePay is the monthly salary, or hourly rate times regular hours.
func BasePay(p Profile, totals attendance.MonthlyTotals) int64 {
	if p.SalaryType == SalaryTypeHourly {
		return premium(p.BaseSalary, totals.RegularMinutes, straightTime)
	}
	return p.BaseSalary
}

func TotalGross(basePay int64, p Profile, premiums Premiums) int64 {
	return basePay + p.RegularAllowances() + p.FixedBlock() + premiums.Total()
}

// TaxExempt is the non-taxable part of the allowances. Each exempt allowance
// is capped at its statutory monthly ceiling.
func TaxExempt(p Profile) int64 {
	var exempt int64
	if p.MealTaxFree {
		exempt += money.Min(p.MealAllowance, MealAllowanceExemptCap)
	}
	if p.TransportTaxFree {
		exempt += money.Min(p.TransportAllowance, TransportAllowanceExemptCap)
	}
	return exempt
}

func TaxableAmount(gross int64, p Profile) int64 {
	return money.Max(0, gross-TaxExempt(p))
}

// MonthlyInsurance floors every component to whole won. The pension base is
// clamped to the contribution floor and cap before the rate applies.
func (c *Calculator) MonthlyInsurance(taxable int64, p Profile) Insurance {
	var ins Insurance
	if taxable <= 0 {
		return ins
	}
	if p.NationalPension {
		base := money.Clamp(taxable, c.rates.PensionBaseFloor, c.rates.PensionBaseCap)
		ins.NationalPension = money.MulFloor(base, c.rates.PensionRate)
	}
	if p.HealthInsurance {
		ins.HealthInsurance = money.MulFloor(taxable, c.rates.HealthRate)
		ins.LongTermCare = money.MulFloor(ins.HealthInsurance, c.rates.LongTermCareRate)
	}
	if p.EmploymentInsurance {
		ins.EmploymentInsurance = money.MulFloor(taxable, c.rates.EmploymentRate)
	}
	return ins
}

// ChildTaxCredit is the monthly credit for children aged 8 to 20.
func ChildTaxCredit(children int) int64 {
	switch {
	case children <= 0:
		return 0
	case children == 1:
		return ChildCreditOne
	case children == 2:
		return ChildCreditTwo
	case children == 3:
		return ChildCreditThree
	default:
		return ChildCreditThree + int64(children-3)*ChildCreditPerExtra
	}
}

// IncomeTax looks up the monthly withholding for a taxable amount.
//
// Below the first band the tax is zero. Above the last band the top row is
// extended by a flat 35% of the excess; that is an approximation of the
// statutory formula and is reported as a caveat rather than an error.
func (c *Calculator) IncomeTax(taxable int64, dependents, children int) (TaxResult, error) {
	if taxable < 0 {
		return TaxResult{}, apperr.Invalid("taxable", taxable, "must not be negative")
	}
	if children < 0 {
		return TaxResult{}, apperr.Invalid("childrenUnder20", children, "must not be negative")
	}

	unit := c.table.Unit
	result := TaxResult{SalaryThousands: money.RoundDiv(taxable, unit)}
	amount, status := c.table.Lookup(result.SalaryThousands, dependents)
	result.Status = status
	if status == taxtable.BelowMinimum {
		return result, nil
	}
	if status == taxtable.AboveMaximum {
		excess := taxable - c.table.MaxThousands()*unit
		amount += money.MulFloor(money.Max(0, excess), TopBracketExcessTax)
		result.Caveats = append(result.Caveats, CaveatAboveTopBracket)
		slog.Warn("withholding table exceeded", "taxYear", c.table.Year, "salaryThousands", result.SalaryThousands, "maxThousands", c.table.MaxThousands())
	}

	result.TableAmount = amount
	result.ChildCredit = ChildTaxCredit(children)
	tax := money.Max(0, amount-result.ChildCredit)
	result.IncomeTax = money.FloorTo(tax, TaxRoundingUnit)
	result.LocalIncomeTax = money.FloorTo(money.MulFloor(result.IncomeTax, LocalIncomeTaxRate), TaxRoundingUnit)
	return result, nil
}

// CalculateSalary validates the profile and composes the month's pay from
// confirmed attendance totals.
func (c *Calculator) CalculateSalary(p Profile, totals attendance.MonthlyTotals) (Salary, error) {
	if err := ValidateProfile(p); err != nil {
		return Salary{}, err
	}

	rate := HourlyRate(p)
	premiums := VariablePremiums(p, rate, totals)
	base := BasePay(p, totals)

	s := Salary{
		HourlyRate:         rate,
		BasePay:            base,
		MealAllowance:      p.MealAllowance,
		TransportAllowance: p.TransportAllowance,
		PositionAllowance:  p.PositionAllowance,
		FixedOvertimePay:   p.FixedBlock(),
		Premiums:           premiums,
		TaxYear:            c.table.Year,
	}
	s.TotalGross = TotalGross(base, p, premiums)
	s.TaxExempt = money.Min(TaxExempt(p), s.TotalGross)
	s.TotalTaxable = TaxableAmount(s.TotalGross, p)

	s.Insurance = c.MonthlyInsurance(s.TotalTaxable, p)
	s.TotalInsurance = s.Insurance.Total()

	tax, err := c.IncomeTax(s.TotalTaxable, p.Dependents, p.ChildrenUnder20)
	if err != nil {
		return Salary{}, err
	}
	s.IncomeTax = tax.IncomeTax
	s.LocalIncomeTax = tax.LocalIncomeTax
	s.Caveats = tax.Caveats

	s.TotalDeductions = s.TotalInsurance + s.IncomeTax + s.LocalIncomeTax
	s.NetSalary = s.TotalGross - s.TotalDeductions
	return s, nil
}

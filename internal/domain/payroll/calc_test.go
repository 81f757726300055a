package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/apperr"
	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/taxtable"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	table, err := taxtable.Load(2024)
	require.NoError(t, err)
	return NewCalculator(table, DefaultRates())
}

func monthlyProfile() Profile {
	return Profile{
		EmployeeID:          "emp-1",
		SalaryType:          SalaryTypeMonthly,
		BaseSalary:          2_090_000,
		MealAllowance:       250_000,
		MealTaxFree:         true,
		PositionAllowance:   100_000,
		NationalPension:     true,
		HealthInsurance:     true,
		EmploymentInsurance: true,
		Dependents:          2,
		ChildrenUnder20:     1,
	}
}

func TestIncomeTaxReferenceCases(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.IncomeTax(2_156_880, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2157), result.SalaryThousands)
	assert.Equal(t, int64(24_340), result.IncomeTax)
	assert.Equal(t, int64(2_430), result.LocalIncomeTax)
	assert.Equal(t, taxtable.Covered, result.Status)

	result, err = calc.IncomeTax(3_000_000, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12_500), result.ChildCredit)
	assert.Equal(t, int64(19_440), result.IncomeTax)
	assert.Equal(t, int64(1_940), result.LocalIncomeTax)
}

func TestIncomeTaxBelowTableIsZero(t *testing.T) {
	calc := newTestCalculator(t)
	for _, taxable := range []int64{0, 500_000, 769_000, 769_499} {
		result, err := calc.IncomeTax(taxable, 1, 0)
		require.NoError(t, err)
		assert.Zero(t, result.IncomeTax, "taxable %d", taxable)
		assert.Zero(t, result.LocalIncomeTax)
		assert.Equal(t, taxtable.BelowMinimum, result.Status)
	}
}

func TestIncomeTaxAboveTableExtrapolates(t *testing.T) {
	calc := newTestCalculator(t)
	result, err := calc.IncomeTax(12_000_000, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, taxtable.AboveMaximum, result.Status)
	assert.Equal(t, int64(1_475_880+700_000), result.IncomeTax)
	assert.Equal(t, int64(217_580), result.LocalIncomeTax)
	assert.Equal(t, []string{CaveatAboveTopBracket}, result.Caveats)
}

func TestIncomeTaxChildCreditNeverNegative(t *testing.T) {
	calc := newTestCalculator(t)
	for children := 0; children <= 10; children++ {
		for _, taxable := range []int64{800_000, 1_500_000, 2_000_000, 3_000_000} {
			result, err := calc.IncomeTax(taxable, 11, children)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.IncomeTax, int64(0))
			assert.Zero(t, result.IncomeTax%TaxRoundingUnit)
			assert.Zero(t, result.LocalIncomeTax%TaxRoundingUnit)
		}
	}

	result, err := calc.IncomeTax(1_500_000, 1, 1)
	require.NoError(t, err)
	assert.Zero(t, result.IncomeTax)
}

func TestIncomeTaxRejectsNegativeInputs(t *testing.T) {
	calc := newTestCalculator(t)
	_, err := calc.IncomeTax(-1, 1, 0)
	assert.True(t, apperr.IsValidation(err))
	_, err = calc.IncomeTax(1_000_000, 1, -1)
	assert.True(t, apperr.IsValidation(err))
}

func TestIncomeTaxClampsDependents(t *testing.T) {
	calc := newTestCalculator(t)
	low, err := calc.IncomeTax(5_000_000, 0, 0)
	require.NoError(t, err)
	one, err := calc.IncomeTax(5_000_000, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, one.IncomeTax, low.IncomeTax)
}

func TestChildTaxCredit(t *testing.T) {
	assert.Equal(t, int64(0), ChildTaxCredit(0))
	assert.Equal(t, int64(12_500), ChildTaxCredit(1))
	assert.Equal(t, int64(29_160), ChildTaxCredit(2))
	assert.Equal(t, int64(54_160), ChildTaxCredit(3))
	assert.Equal(t, int64(79_160), ChildTaxCredit(4))
	assert.Equal(t, int64(104_160), ChildTaxCredit(5))
}

func TestHourlyRate(t *testing.T) {
	assert.Equal(t, int64(10_000), HourlyRate(Profile{SalaryType: SalaryTypeMonthly, BaseSalary: 2_090_000}))
	assert.Equal(t, int64(14_354), HourlyRate(Profile{SalaryType: SalaryTypeMonthly, BaseSalary: 3_000_000}))
	assert.Equal(t, int64(9_860), HourlyRate(Profile{SalaryType: SalaryTypeHourly, BaseSalary: 9_860}))

	withFixed := Profile{SalaryType: SalaryTypeMonthly, BaseSalary: 2_090_000, FixedOvertime: true, FixedOvertimeAmount: 500_000}
	assert.Equal(t, int64(10_000), HourlyRate(withFixed))
}

func TestHolidayPay(t *testing.T) {
	minutes := attendance.HolidayMinutes{Regular: 480, Excess: 120}
	assert.Equal(t, int64(120_000+40_000), HolidayPay(10_000, minutes, false))
	assert.Equal(t, int64(80_000+30_000), HolidayPay(10_000, minutes, true))
	assert.Zero(t, HolidayPay(10_000, attendance.HolidayMinutes{}, false))
}

func TestPremiumsFloor(t *testing.T) {
	assert.Equal(t, int64(3_588), OvertimePay(14_354, 10))
	assert.Equal(t, int64(119), NightWorkPay(14_354, 1))
}

func TestTaxExemptCappedRegardlessOfAllowance(t *testing.T) {
	p := Profile{MealAllowance: 350_000, MealTaxFree: true, TransportAllowance: 150_000, TransportTaxFree: true}
	assert.Equal(t, int64(200_000+150_000), TaxExempt(p))

	p.TransportTaxFree = false
	assert.Equal(t, int64(200_000), TaxExempt(p))
	assert.Equal(t, int64(0), TaxableAmount(100_000, p))
}

func TestMonthlyInsurance(t *testing.T) {
	calc := newTestCalculator(t)
	p := monthlyProfile()

	ins := calc.MonthlyInsurance(2_560_000, p)
	assert.Equal(t, int64(115_200), ins.NationalPension)
	assert.Equal(t, int64(90_752), ins.HealthInsurance)
	assert.Equal(t, int64(11_752), ins.LongTermCare)
	assert.Equal(t, int64(23_040), ins.EmploymentInsurance)
	assert.Equal(t, int64(240_744), ins.Total())

	assert.Equal(t, int64(17_550), calc.MonthlyInsurance(300_000, p).NationalPension)
	assert.Equal(t, int64(277_650), calc.MonthlyInsurance(8_000_000, p).NationalPension)
	assert.Equal(t, Insurance{}, calc.MonthlyInsurance(0, p))

	p.HealthInsurance = false
	ins = calc.MonthlyInsurance(2_560_000, p)
	assert.Zero(t, ins.HealthInsurance)
	assert.Zero(t, ins.LongTermCare)
}

func TestCalculateSalaryMonthly(t *testing.T) {
	calc := newTestCalculator(t)
	totals := attendance.MonthlyTotals{
		OvertimeMinutes:    300,
		NightWorkMinutes:   60,
		Holiday:            attendance.HolidayMinutes{Regular: 480, Excess: 120},
		SubstitutedHoliday: attendance.HolidayMinutes{Regular: 480},
	}

	s, err := calc.CalculateSalary(monthlyProfile(), totals)
	require.NoError(t, err)

	assert.Equal(t, int64(10_000), s.HourlyRate)
	assert.Equal(t, int64(75_000), s.Premiums.OvertimePay)
	assert.Equal(t, int64(5_000), s.Premiums.NightPay)
	assert.Equal(t, int64(240_000), s.Premiums.HolidayPay)
	assert.Equal(t, int64(2_760_000), s.TotalGross)
	assert.Equal(t, int64(200_000), s.TaxExempt)
	assert.Equal(t, int64(2_560_000), s.TotalTaxable)
	assert.Equal(t, int64(240_744), s.TotalInsurance)
	assert.Equal(t, int64(17_360), s.IncomeTax)
	assert.Equal(t, int64(1_730), s.LocalIncomeTax)
	assert.Equal(t, int64(2_500_166), s.NetSalary)
	assert.Equal(t, 2024, s.TaxYear)
	assert.Equal(t, s.TotalGross-s.TotalInsurance-s.IncomeTax-s.LocalIncomeTax, s.NetSalary)
}

func TestCalculateSalaryFixedOvertimeSkipsPremiums(t *testing.T) {
	calc := newTestCalculator(t)
	p := monthlyProfile()
	p.FixedOvertime = true
	p.FixedOvertimeAmount = 300_000
	p.FixedNightAmount = 50_000

	s, err := calc.CalculateSalary(p, attendance.MonthlyTotals{OvertimeMinutes: 600, NightWorkMinutes: 120})
	require.NoError(t, err)
	assert.Equal(t, Premiums{}, s.Premiums)
	assert.Equal(t, int64(350_000), s.FixedOvertimePay)
	assert.Equal(t, int64(2_090_000+350_000+350_000), s.TotalGross)
}

func TestCalculateSalaryHourly(t *testing.T) {
	calc := newTestCalculator(t)
	p := Profile{
		EmployeeID: "emp-2",
		SalaryType: SalaryTypeHourly,
		BaseSalary: 10_000,
		Dependents: 1,
	}
	s, err := calc.CalculateSalary(p, attendance.MonthlyTotals{RegularMinutes: 20 * 480, OvertimeMinutes: 120})
	require.NoError(t, err)
	assert.Equal(t, int64(1_600_000), s.BasePay)
	assert.Equal(t, int64(30_000), s.Premiums.OvertimePay)
	assert.Equal(t, int64(1_630_000), s.TotalGross)
	assert.Zero(t, s.TotalInsurance)
}

func TestCalculateSalaryNetIdentity(t *testing.T) {
	calc := newTestCalculator(t)
	for _, base := range []int64{0, 500_000, 1_000_000, 2_500_000, 4_000_000, 9_000_000, 15_000_000} {
		for dependents := 1; dependents <= 11; dependents += 5 {
			p := monthlyProfile()
			p.BaseSalary = base
			p.Dependents = dependents
			p.ChildrenUnder20 = dependents - 1
			s, err := calc.CalculateSalary(p, attendance.MonthlyTotals{OvertimeMinutes: 90, NightWorkMinutes: 30})
			require.NoError(t, err)
			assert.Equal(t, s.TotalGross-s.TotalInsurance-s.IncomeTax-s.LocalIncomeTax, s.NetSalary)
			assert.Equal(t, s.TotalInsurance+s.IncomeTax+s.LocalIncomeTax, s.TotalDeductions)
		}
	}
}

func TestCalculateSalaryRejectsInvalidProfile(t *testing.T) {
	calc := newTestCalculator(t)
	cases := map[string]func(p *Profile){
		"dependents zero":    func(p *Profile) { p.Dependents = 0 },
		"dependents twelve":  func(p *Profile) { p.Dependents = 12 },
		"negative children":  func(p *Profile) { p.ChildrenUnder20 = -1 },
		"too many children":  func(p *Profile) { p.ChildrenUnder20 = p.Dependents },
		"unknown salaryType": func(p *Profile) { p.SalaryType = "WEEKLY" },
		"negative base":      func(p *Profile) { p.BaseSalary = -1 },
		"missing employee":   func(p *Profile) { p.EmployeeID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := monthlyProfile()
			mutate(&p)
			_, err := calc.CalculateSalary(p, attendance.MonthlyTotals{})
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestValidateProfileReportsJSONFieldName(t *testing.T) {
	p := monthlyProfile()
	p.Dependents = 12
	err := ValidateProfile(p)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dependents", verr.Field)
}

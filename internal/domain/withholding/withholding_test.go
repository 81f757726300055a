package withholding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/payroll"
)

func rec(employeeID string, year int, month time.Month, gross, taxable, tax int64, status payroll.Status) payroll.Record {
	return payroll.Record{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Status:     status,
		Salary: payroll.Salary{
			TotalGross:     gross,
			TotalTaxable:   taxable,
			IncomeTax:      tax,
			LocalIncomeTax: tax / 100 * 10,
		},
	}
}

func sample() []payroll.Record {
	return []payroll.Record{
		rec("emp-2", 2024, time.February, 3_200_000, 3_000_000, 74_350, payroll.StatusConfirmed),
		rec("emp-1", 2024, time.January, 2_760_000, 2_560_000, 17_360, payroll.StatusConfirmed),
		rec("emp-2", 2024, time.January, 3_200_000, 3_000_000, 74_350, payroll.StatusConfirmed),
		rec("emp-1", 2024, time.February, 2_760_000, 2_560_000, 17_360, payroll.StatusDraft),
		rec("emp-1", 2023, time.December, 2_500_000, 2_300_000, 20_000, payroll.StatusConfirmed),
	}
}

func TestMonthlyGroupsAndSorts(t *testing.T) {
	months := Monthly(sample())
	require.Len(t, months, 3)

	assert.Equal(t, 2023, months[0].Year)
	jan := months[1]
	assert.Equal(t, time.January, jan.Month)
	assert.Equal(t, 2, jan.Employees)
	assert.Equal(t, int64(5_960_000), jan.Gross)
	assert.Equal(t, int64(5_560_000), jan.Taxable)
	assert.Equal(t, int64(400_000), jan.NonTaxable)
	assert.Equal(t, int64(91_710), jan.IncomeTax)
	assert.Equal(t, int64(1_730+7_430), jan.LocalIncomeTax)
	assert.Equal(t, jan.IncomeTax+jan.LocalIncomeTax, jan.TotalTax())
}

func TestYearlySumsMonths(t *testing.T) {
	yearly := Yearly(2024, sample())
	require.Len(t, yearly.Months, 2)
	assert.Equal(t, 2, yearly.Employees)

	var gross, taxable, nonTaxable, tax, local int64
	for _, m := range yearly.Months {
		gross += m.Gross
		taxable += m.Taxable
		nonTaxable += m.NonTaxable
		tax += m.IncomeTax
		local += m.LocalIncomeTax
	}
	assert.Equal(t, gross, yearly.Gross)
	assert.Equal(t, taxable, yearly.Taxable)
	assert.Equal(t, nonTaxable, yearly.NonTaxable)
	assert.Equal(t, yearly.Gross-yearly.Taxable, yearly.NonTaxable)
	assert.Equal(t, tax, yearly.IncomeTax)
	assert.Equal(t, local, yearly.LocalIncomeTax)
}

func TestConfirmedOnly(t *testing.T) {
	confirmed := ConfirmedOnly(sample())
	assert.Len(t, confirmed, 4)
	yearly := Yearly(2024, confirmed)
	assert.Equal(t, int64(2_760_000+3_200_000+3_200_000), yearly.Gross)
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, Monthly(nil))
	yearly := Yearly(2024, nil)
	assert.Zero(t, yearly.Gross)
	assert.Empty(t, yearly.Months)
}

// Package withholding rolls persisted payroll records up into the monthly
// and yearly withholding figures reported to the tax office.
package withholding

import (
	"sort"
	"time"

	"hrpay/internal/domain/payroll"
)

type MonthlySummary struct {
	Year           int        `json:"year"`
	Month          time.Month `json:"month"`
	Employees      int        `json:"employees"`
	Gross          int64      `json:"gross"`
	Taxable        int64      `json:"taxable"`
	NonTaxable     int64      `json:"nonTaxable"`
	IncomeTax      int64      `json:"incomeTax"`
	LocalIncomeTax int64      `json:"localIncomeTax"`
}

func (m MonthlySummary) TotalTax() int64 {
	return m.IncomeTax + m.LocalIncomeTax
}

type YearlySummary struct {
	Year           int              `json:"year"`
	Months         []MonthlySummary `json:"months"`
	Employees      int              `json:"employees"`
	Gross          int64            `json:"gross"`
	Taxable        int64            `json:"taxable"`
	NonTaxable     int64            `json:"nonTaxable"`
	IncomeTax      int64            `json:"incomeTax"`
	LocalIncomeTax int64            `json:"localIncomeTax"`
}

func (y YearlySummary) TotalTax() int64 {
	return y.IncomeTax + y.LocalIncomeTax
}

// Monthly groups records by (year, month), ordered chronologically.
func Monthly(records []payroll.Record) []MonthlySummary {
	byPeriod := make(map[payroll.Period]*MonthlySummary)
	for _, record := range records {
		period := record.Period()
		summary, ok := byPeriod[period]
		if !ok {
			summary = &MonthlySummary{Year: period.Year, Month: period.Month}
			byPeriod[period] = summary
		}
		summary.Employees++
		summary.Gross += record.Salary.TotalGross
		summary.Taxable += record.Salary.TotalTaxable
		summary.IncomeTax += record.Salary.IncomeTax
		summary.LocalIncomeTax += record.Salary.LocalIncomeTax
	}

	summaries := make([]MonthlySummary, 0, len(byPeriod))
	for _, summary := range byPeriod {
		summary.NonTaxable = summary.Gross - summary.Taxable
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year < summaries[j].Year
		}
		return summaries[i].Month < summaries[j].Month
	})
	return summaries
}

// Yearly sums the monthly summaries of year. Employees is the distinct
// headcount, so it is taken from records rather than the monthly counts.
func Yearly(year int, records []payroll.Record) YearlySummary {
	inYear := make([]payroll.Record, 0, len(records))
	employees := make(map[string]struct{})
	for _, record := range records {
		if record.Year == year {
			inYear = append(inYear, record)
			employees[record.EmployeeID] = struct{}{}
		}
	}

	yearly := YearlySummary{Year: year, Months: Monthly(inYear), Employees: len(employees)}
	for _, m := range yearly.Months {
		yearly.Gross += m.Gross
		yearly.Taxable += m.Taxable
		yearly.NonTaxable += m.NonTaxable
		yearly.IncomeTax += m.IncomeTax
		yearly.LocalIncomeTax += m.LocalIncomeTax
	}
	return yearly
}

// ConfirmedOnly drops draft records, which are not yet filed.
func ConfirmedOnly(records []payroll.Record) []payroll.Record {
	confirmed := make([]payroll.Record, 0, len(records))
	for _, record := range records {
		if record.Confirmed() {
			confirmed = append(confirmed, record)
		}
	}
	return confirmed
}

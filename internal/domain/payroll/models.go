package payroll

import (
	"fmt"
	"time"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/taxtable"
)

// Profile is an employee's compensation terms. Amounts are won per month
// except BaseSalary for hourly employees, which is won per hour.
type Profile struct {
	EmployeeID          string     `json:"employeeId" validate:"required"`
	Name                string     `json:"name,omitempty"`
	SalaryType          SalaryType `json:"salaryType" validate:"required,oneof=MONTHLY HOURLY"`
	BaseSalary          int64      `json:"baseSalary" validate:"gte=0"`
	MealAllowance       int64      `json:"mealAllowance" validate:"gte=0"`
	TransportAllowance  int64      `json:"transportAllowance" validate:"gte=0"`
	PositionAllowance   int64      `json:"positionAllowance" validate:"gte=0"`
	MealTaxFree         bool       `json:"mealTaxFree"`
	TransportTaxFree    bool       `json:"transportTaxFree"`
	FixedOvertime       bool       `json:"fixedOvertime"`
	FixedOvertimeAmount int64      `json:"fixedOvertimeAmount" validate:"gte=0"`
	FixedNightAmount    int64      `json:"fixedNightAmount" validate:"gte=0"`
	FixedHolidayAmount  int64      `json:"fixedHolidayAmount" validate:"gte=0"`
	NationalPension     bool       `json:"nationalPension"`
	HealthInsurance     bool       `json:"healthInsurance"`
	EmploymentInsurance bool       `json:"employmentInsurance"`
	Dependents          int        `json:"dependents" validate:"min=1,max=11"`
	ChildrenUnder20     int        `json:"childrenUnder20" validate:"min=0,ltfield=Dependents"`
	HireDate            time.Time  `json:"hireDate"`
}

// FixedBlock is the inclusive-wage allowance paid instead of variable premiums.
func (p Profile) FixedBlock() int64 {
	if !p.FixedOvertime {
		return 0
	}
	return p.FixedOvertimeAmount + p.FixedNightAmount + p.FixedHolidayAmount
}

// RegularAllowances are the fixed monthly allowances counted in ordinary wage.
func (p Profile) RegularAllowances() int64 {
	return p.MealAllowance + p.TransportAllowance + p.PositionAllowance
}

type Premiums struct {
	OvertimeMinutes int   `json:"overtimeMinutes"`
	NightMinutes    int   `json:"nightMinutes"`
	HolidayMinutes  int   `json:"holidayMinutes"`
	OvertimePay     int64 `json:"overtimePay"`
	NightPay        int64 `json:"nightPay"`
	HolidayPay      int64 `json:"holidayPay"`
}

func (p Premiums) Total() int64 {
	return p.OvertimePay + p.NightPay + p.HolidayPay
}

type Insurance struct {
	NationalPension     int64 `json:"nationalPension"`
	HealthInsurance     int64 `json:"healthInsurance"`
	LongTermCare        int64 `json:"longTermCare"`
	EmploymentInsurance int64 `json:"employmentInsurance"`
}

func (i Insurance) Total() int64 {
	return i.NationalPension + i.HealthInsurance + i.LongTermCare + i.EmploymentInsurance
}

type TaxResult struct {
	SalaryThousands int64                 `json:"salaryThousands"`
	TableAmount     int64                 `json:"tableAmount"`
	ChildCredit     int64                 `json:"childCredit"`
	IncomeTax       int64                 `json:"incomeTax"`
	LocalIncomeTax  int64                 `json:"localIncomeTax"`
	Status          taxtable.LookupStatus `json:"status"`
	Caveats         []string              `json:"caveats,omitempty"`
}

// Salary is one month's computed pay.
// NetSalary == TotalGross - Insurance.Total() - IncomeTax - LocalIncomeTax.
type Salary struct {
	HourlyRate         int64     `json:"hourlyRate"`
	BasePay            int64     `json:"basePay"`
	MealAllowance      int64     `json:"mealAllowance"`
	TransportAllowance int64     `json:"transportAllowance"`
	PositionAllowance  int64     `json:"positionAllowance"`
	FixedOvertimePay   int64     `json:"fixedOvertimePay"`
	Premiums           Premiums  `json:"premiums"`
	TotalGross         int64     `json:"totalGross"`
	TaxExempt          int64     `json:"taxExempt"`
	TotalTaxable       int64     `json:"totalTaxable"`
	Insurance          Insurance `json:"insurance"`
	TotalInsurance     int64     `json:"totalInsurance"`
	IncomeTax          int64     `json:"incomeTax"`
	LocalIncomeTax     int64     `json:"localIncomeTax"`
	TotalDeductions    int64     `json:"totalDeductions"`
	NetSalary          int64     `json:"netSalary"`
	TaxYear            int       `json:"taxYear"`
	Caveats            []string  `json:"caveats,omitempty"`
}

// Record is the persisted payroll of one employee for one month. The
// (EmployeeID, Year, Month) triple is unique.
type Record struct {
	ID          string                   `json:"id"`
	EmployeeID  string                   `json:"employeeId"`
	Year        int                      `json:"year"`
	Month       time.Month               `json:"month"`
	Profile     Profile                  `json:"profile"`
	Attendance  attendance.MonthlyTotals `json:"attendance"`
	Salary      Salary                   `json:"salary"`
	Status      Status                   `json:"status"`
	ConfirmedAt *time.Time               `json:"confirmedAt,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

func (r Record) Confirmed() bool {
	return r.Status == StatusConfirmed
}

func (r Record) Period() Period {
	return Period{Year: r.Year, Month: r.Month}
}

type Period struct {
	Year  int
	Month time.Month
}

func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) Days() int {
	return p.Start().AddDate(0, 1, -1).Day()
}

// Prev returns the calendar month before p.
func (p Period) Prev() Period {
	prev := p.Start().AddDate(0, -1, 0)
	return Period{Year: prev.Year(), Month: prev.Month()}
}

func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

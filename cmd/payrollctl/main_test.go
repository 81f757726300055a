package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/leave"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/retirement"
	"hrpay/internal/domain/withholding"
	"hrpay/internal/platform/jobs"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e := newEnv()
	root := newRootCmd(e)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	e.close()
	return out.String(), err
}

func writeFile(t *testing.T, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func isolate(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("DATA_ENCRYPTION_KEY", "")
	t.Setenv("APP_ENV", "test")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "hrpay.db"))
}

var testProfile = payroll.Profile{
	EmployeeID: "emp-1",
	SalaryType: payroll.SalaryTypeMonthly,
	BaseSalary: 3_000_000,
	Dependents: 1,
}

var testPunches = []punch{
	{EmployeeID: "emp-1", Date: "2024-05-02", ClockIn: "09:00", ClockOut: "20:00", BreakMinutes: 60},
	{EmployeeID: "emp-1", Date: "2024-05-03", ClockIn: "09:00", ClockOut: "18:00", BreakMinutes: 60},
}

func TestWorktimeSingleShift(t *testing.T) {
	isolate(t)
	out, err := run(t, "worktime", "--in", "22:00", "--out", "06:00", "--break", "60")
	require.NoError(t, err)

	var worked attendance.WorkTime
	require.NoError(t, json.Unmarshal([]byte(out), &worked))
	assert.Equal(t, 420, worked.WorkMinutes)
	assert.Equal(t, 0, worked.OvertimeMinutes)
	assert.Equal(t, 480, worked.NightWorkMinutes)
}

func TestWorktimeRequiresShiftOrFile(t *testing.T) {
	isolate(t)
	_, err := run(t, "worktime")
	assert.Error(t, err)
}

func TestWorktimeWeeklyReport(t *testing.T) {
	isolate(t)
	out, err := run(t, "worktime", "--file", writeFile(t, "punches.json", testPunches))
	require.NoError(t, err)

	var report worktimeReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Weeks, 1)
	assert.Equal(t, 1080, report.Weeks[0].TotalMinutes)
	assert.True(t, report.Weeks[0].Pass)
	assert.Equal(t, 120, report.Totals.OvertimeMinutes)
}

func TestSalaryPreview(t *testing.T) {
	isolate(t)
	out, err := run(t, "salary",
		"--profile", writeFile(t, "profile.json", testProfile),
		"--attendance", writeFile(t, "punches.json", testPunches),
		"--year", "2024", "--month", "5")
	require.NoError(t, err)

	var record payroll.Record
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, payroll.StatusDraft, record.Status)
	assert.Equal(t, 120, record.Attendance.OvertimeMinutes)
	s := record.Salary
	assert.Equal(t, s.BasePay+s.Premiums.Total(), s.TotalGross)
	assert.Equal(t, s.TotalGross-s.TotalInsurance-s.IncomeTax-s.LocalIncomeTax, s.NetSalary)
}

func TestSalaryRejectsForeignAttendance(t *testing.T) {
	isolate(t)
	punches := []punch{{EmployeeID: "emp-2", Date: "2024-05-02", ClockIn: "09:00", ClockOut: "18:00"}}
	_, err := run(t, "salary",
		"--profile", writeFile(t, "profile.json", testProfile),
		"--attendance", writeFile(t, "punches.json", punches),
		"--year", "2024", "--month", "5")
	assert.Error(t, err)
}

func TestLeaveBalance(t *testing.T) {
	isolate(t)
	lines := []leaveLine{
		{EmployeeID: "emp-1", Type: leave.TypeAnnual, Status: leave.StatusApproved, StartDate: "2024-05-06", EndDate: "2024-05-08"},
		{EmployeeID: "emp-1", Type: leave.TypeAnnual, Status: leave.StatusRejected, StartDate: "2024-05-20", EndDate: "2024-05-20"},
	}
	out, err := run(t, "leave", "--join-date", "2021-03-01", "--on", "2024-06-01", "--file", writeFile(t, "leave.json", lines))
	require.NoError(t, err)

	var balance leave.Balance
	require.NoError(t, json.Unmarshal([]byte(out), &balance))
	assert.Equal(t, 16.0, balance.Entitlement)
	assert.Equal(t, 3.0, balance.Used)
	assert.Equal(t, 13.0, balance.Remaining)
}

func TestPayrollLifecycle(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, err := run(t, "attendance", "import", "--file", writeFile(t, "punches.json", testPunches), "--confirm")
	require.NoError(t, err)

	profiles := writeFile(t, "profiles.json", []payroll.Profile{testProfile})
	out, err := run(t, "generate", "--profiles", profiles, "--year", "2024", "--month", "5")
	require.NoError(t, err)
	var summary jobs.GenerationSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, []string{"emp-1"}, summary.Created)

	out, err = run(t, "generate", "--profiles", profiles, "--year", "2024", "--month", "5")
	require.NoError(t, err)
	summary = jobs.GenerationSummary{}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, []string{"emp-1"}, summary.Skipped)

	out, err = run(t, "show", "--employee", "emp-1", "--year", "2024", "--month", "5")
	require.NoError(t, err)
	var record payroll.Record
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, 120, record.Attendance.OvertimeMinutes)

	_, err = run(t, "confirm", record.ID)
	require.NoError(t, err)

	out, err = run(t, "withholding", "--year", "2024")
	require.NoError(t, err)
	var yearly withholding.YearlySummary
	require.NoError(t, json.Unmarshal([]byte(out), &yearly))
	assert.Equal(t, record.Salary.IncomeTax, yearly.IncomeTax)

	xlsx := filepath.Join(dir, "withholding.xlsx")
	_, err = run(t, "withholding", "--year", "2024", "--xlsx", xlsx)
	require.NoError(t, err)
	assert.FileExists(t, xlsx)

	out, err = run(t, "payslip", record.ID, "--out", dir)
	require.NoError(t, err)
	var written map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &written))
	assert.FileExists(t, written["path"])
	assert.Equal(t, ".pdf", filepath.Ext(written["path"]))

	out, err = run(t, "severance", "--employee", "emp-1", "--hire-date", "2023-01-01", "--reference-date", "2024-06-15", "--base", "3000000")
	require.NoError(t, err)
	assert.Contains(t, out, "serviceDays")

	out, err = run(t, "severance", "--employee", "emp-1", "--hire-date", "2023-01-01", "--reference-date", "2024-06-15")
	require.NoError(t, err)
	var estimate retirement.SeveranceEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &estimate))
	assert.Equal(t, int64(98_630), estimate.OrdinaryDailyWage)
}

func TestPeriodFlagsDefaultToLastMonth(t *testing.T) {
	cases := []struct {
		name      string
		now       time.Time
		wantYear  int
		wantMonth time.Month
	}{
		{"mid january", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), 2023, time.December},
		{"march 30", time.Date(2024, time.March, 30, 12, 0, 0, 0, time.UTC), 2024, time.February},
		{"march 31", time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC), 2024, time.February},
		{"may 31", time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), 2024, time.April},
		{"first of month", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), 2024, time.June},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			y, m := periodFlags(0, 0, tc.now)
			assert.Equal(t, tc.wantYear, y)
			assert.Equal(t, tc.wantMonth, m)
		})
	}

	y, m := periodFlags(2024, 7, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.July, m)
}

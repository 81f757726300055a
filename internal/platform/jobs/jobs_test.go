package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/taxtable"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/lock"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/store/memory"
)

type recordingRunLog struct {
	started  []string
	finished map[string]string
}

func (r *recordingRunLog) Start(_ context.Context, jobType string) (string, error) {
	r.started = append(r.started, jobType)
	return "run-1", nil
}

func (r *recordingRunLog) Finish(_ context.Context, runID, status string, _ []byte) error {
	if r.finished == nil {
		r.finished = map[string]string{}
	}
	r.finished[runID] = status
	return nil
}

func newGenerator(t *testing.T, profiles ...payroll.Profile) *Generator {
	t.Helper()
	table, err := taxtable.Load(2024)
	require.NoError(t, err)
	svc := payroll.NewService(memory.NewPayrollStore(), payroll.NewCalculator(table, payroll.DefaultRates()), lock.NewLocalGuard(), metrics.New())
	return &Generator{
		Payroll:    svc,
		Profiles:   StaticProfiles(profiles),
		Attendance: attendance.NewService(memory.NewAttendanceStore()),
	}
}

func profile(id string) payroll.Profile {
	return payroll.Profile{EmployeeID: id, SalaryType: payroll.SalaryTypeMonthly, BaseSalary: 3_000_000, Dependents: 1}
}

func TestGenerateMonthCreatesAndSkips(t *testing.T) {
	gen := newGenerator(t, profile("emp-1"), profile("emp-2"))
	ctx := context.Background()

	summary, err := gen.GenerateMonth(ctx, 2024, time.May)
	require.NoError(t, err)
	assert.Equal(t, []string{"emp-1", "emp-2"}, summary.Created)
	assert.Empty(t, summary.Skipped)

	summary, err = gen.GenerateMonth(ctx, 2024, time.May)
	require.NoError(t, err)
	assert.Empty(t, summary.Created)
	assert.Equal(t, []string{"emp-1", "emp-2"}, summary.Skipped)
}

func TestGenerateMonthReportsFailures(t *testing.T) {
	bad := profile("emp-bad")
	bad.Dependents = 0
	gen := newGenerator(t, profile("emp-1"), bad)

	summary, err := gen.GenerateMonth(context.Background(), 2024, time.May)
	require.Error(t, err)
	assert.Equal(t, []string{"emp-1"}, summary.Created)
	assert.Contains(t, summary.Failed, "emp-bad")
}

func TestRunNowRecordsRun(t *testing.T) {
	runs := &recordingRunLog{}
	collector := metrics.New()
	svc := New(config.Config{}, runs, collector)

	_, err := svc.RunNow(context.Background(), JobPayrollGeneration, func(context.Context) (any, error) {
		return map[string]int{"created": 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{JobPayrollGeneration}, runs.started)
	assert.Equal(t, "completed", runs.finished["run-1"])

	_, err = svc.RunNow(context.Background(), JobPayrollGeneration, func(context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, "failed", runs.finished["run-1"])
	assert.Equal(t, uint64(2), collector.Snapshot()["jobRunsTotal"])
}

func TestEnqueueRunsOnWorker(t *testing.T) {
	svc := New(config.Config{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Start(ctx, nil))

	done := make(chan struct{})
	svc.Enqueue(JobPayrollGeneration, func(context.Context) (any, error) {
		close(done)
		return nil, nil
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	svc := New(config.Config{PayrollCron: "every month"}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, svc.Start(ctx, newGenerator(t)))
}

func TestPreviousPeriodAtMonthEnd(t *testing.T) {
	cases := []struct {
		now  time.Time
		want payroll.Period
	}{
		{time.Date(2024, time.March, 31, 3, 0, 0, 0, time.UTC), payroll.Period{Year: 2024, Month: time.February}},
		{time.Date(2024, time.May, 31, 3, 0, 0, 0, time.UTC), payroll.Period{Year: 2024, Month: time.April}},
		{time.Date(2024, time.January, 1, 3, 0, 0, 0, time.UTC), payroll.Period{Year: 2023, Month: time.December}},
	}
	for _, tc := range cases {
		t.Run(tc.now.Format(time.DateOnly), func(t *testing.T) {
			assert.Equal(t, tc.want, PreviousPeriod(tc.now))
		})
	}
}

package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hrpay/internal/domain/apperr"
	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/retirement"
	"hrpay/internal/platform/metrics"
)

// Guard serializes generation of one period across processes. acquired is
// false when another holder owns the key.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), acquired bool, err error)
}

// Auditor records payroll state changes; *audit.Service and audit.Log
// satisfy it.
type Auditor interface {
	Record(ctx context.Context, evt audit.Event) error
}

type Service struct {
	store   StoreAPI
	calc    *Calculator
	guard   Guard
	metrics *metrics.Collector
	auditor Auditor
	now     func() time.Time
}

// NewService wires the orchestrator. guard and collector may be nil.
func NewService(store StoreAPI, calc *Calculator, guard Guard, collector *metrics.Collector) *Service {
	return &Service{store: store, calc: calc, guard: guard, metrics: collector, now: time.Now}
}

// WithAuditor sets the trail that generation, recalculation, confirmation
// and deletion are reported to.
func (s *Service) WithAuditor(a Auditor) *Service {
	s.auditor = a
	return s
}

func (s *Service) Calculator() *Calculator {
	return s.calc
}

// GenerationKey identifies one employee's pay month for the guard.
func GenerationKey(employeeID string, period Period) string {
	return "payroll:generate:" + employeeID + ":" + period.String()
}

// Preview computes a month's pay without persisting it.
func (s *Service) Preview(profile Profile, year int, month time.Month, records []attendance.Record) (Record, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return Record{}, err
	}
	period := Period{Year: year, Month: month}
	totals, err := monthTotals(profile.EmployeeID, period, records)
	if err != nil {
		return Record{}, err
	}
	salary, err := s.calc.CalculateSalary(profile, totals)
	if err != nil {
		return Record{}, err
	}
	now := s.now().UTC()
	return Record{
		ID:         uuid.NewString(),
		EmployeeID: profile.EmployeeID,
		Year:       year,
		Month:      month,
		Profile:    profile,
		Attendance: totals,
		Salary:     salary,
		Status:     StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Generate creates the draft payroll of one employee for one month. A
// second generation for the same period fails with ErrDuplicatePayroll,
// whether it is caught by the pre-check or by the store.
func (s *Service) Generate(ctx context.Context, profile Profile, year int, month time.Month, records []attendance.Record) (Record, error) {
	started := s.now()
	record, err := s.generate(ctx, profile, year, month, records)
	s.metrics.RecordGeneration(outcome(err), s.now().Sub(started))
	return record, err
}

func (s *Service) generate(ctx context.Context, profile Profile, year int, month time.Month, records []attendance.Record) (Record, error) {
	record, err := s.Preview(profile, year, month, records)
	if err != nil {
		return Record{}, err
	}
	period := record.Period()

	if _, err := s.store.Find(ctx, profile.EmployeeID, year, month); err == nil {
		return Record{}, ErrDuplicatePayroll
	} else if !errors.Is(err, ErrNotFound) {
		return Record{}, fmt.Errorf("check existing payroll: %w", err)
	}

	if s.guard != nil {
		release, acquired, err := s.guard.Acquire(ctx, GenerationKey(profile.EmployeeID, period))
		if err != nil {
			return Record{}, fmt.Errorf("acquire generation guard: %w", err)
		}
		if !acquired {
			return Record{}, ErrGenerationInProgress
		}
		defer release()
	}

	if err := s.store.Create(ctx, record); err != nil {
		return Record{}, err
	}
	s.trail(ctx, audit.ActionGenerate, record, nil, record.Salary)
	if len(record.Salary.Caveats) > 0 {
		s.metrics.RecordTaxCaveat()
		slog.Warn("payroll generated with caveats", "employeeId", record.EmployeeID, "period", period.String(), "caveats", record.Salary.Caveats)
	}
	return record, nil
}

// Recalculate replaces a draft's snapshot with a fresh computation.
func (s *Service) Recalculate(ctx context.Context, id string, profile Profile, records []attendance.Record) (Record, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if existing.Confirmed() {
		return Record{}, ErrRecordConfirmed
	}
	if profile.EmployeeID != existing.EmployeeID {
		return Record{}, apperr.Invalid("employeeId", profile.EmployeeID, "does not match payroll record")
	}
	next, err := s.Preview(profile, existing.Year, existing.Month, records)
	if err != nil {
		return Record{}, err
	}
	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	if err := s.store.Update(ctx, next); err != nil {
		return Record{}, err
	}
	s.trail(ctx, audit.ActionRecalculate, next, existing.Salary, next.Salary)
	return next, nil
}

// Confirm is idempotent: confirming a confirmed record returns it unchanged.
func (s *Service) Confirm(ctx context.Context, id string) (Record, error) {
	record, transitioned, err := s.store.Confirm(ctx, id, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return Record{}, err
	}
	if transitioned {
		s.metrics.RecordConfirmation()
		s.trail(ctx, audit.ActionConfirm, record, StatusDraft, record.Status)
	}
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.trail(ctx, audit.ActionDelete, existing, existing.Salary, nil)
	return nil
}

// trail reports a change to the auditor. Audit failures are logged and never
// undo the change.
func (s *Service) trail(ctx context.Context, action string, record Record, before, after any) {
	if s.auditor == nil {
		return
	}
	evt, err := audit.NewEvent(action, audit.EntityPayroll, record.ID, record.EmployeeID, before, after)
	if err == nil {
		err = s.auditor.Record(ctx, evt)
	}
	if err != nil {
		slog.Warn("audit record failed", "action", action, "payrollId", record.ID, "err", err)
	}
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Find(ctx context.Context, employeeID string, year int, month time.Month) (Record, error) {
	return s.store.Find(ctx, employeeID, year, month)
}

func (s *Service) ListYear(ctx context.Context, year int) ([]Record, error) {
	return s.store.ListYear(ctx, year)
}

func (s *Service) ListEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	return s.store.ListEmployee(ctx, employeeID)
}

// LatestConfirmedProfile returns the profile snapshot of the employee's most
// recent confirmed payroll at or before the given month.
func (s *Service) LatestConfirmedProfile(ctx context.Context, employeeID string, year int, month time.Month) (Profile, bool, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return Profile{}, false, err
	}
	records, err := s.store.ListEmployee(ctx, employeeID)
	if err != nil {
		return Profile{}, false, err
	}
	limit := Period{Year: year, Month: month}.Start()
	var latest *Record
	for i := range records {
		record := &records[i]
		start := record.Period().Start()
		if !record.Confirmed() || start.After(limit) {
			continue
		}
		if latest == nil || start.After(latest.Period().Start()) {
			latest = record
		}
	}
	if latest == nil {
		return Profile{}, false, nil
	}
	return latest.Profile, true, nil
}

// Trailing returns the confirmed gross of the n months before (year, month),
// oldest first. Months without a confirmed payroll count as zero gross.
func (s *Service) Trailing(ctx context.Context, employeeID string, year int, month time.Month, n int) ([]retirement.MonthWage, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	records, err := s.store.ListEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	gross := make(map[Period]int64, len(records))
	for _, record := range records {
		if record.Confirmed() {
			gross[record.Period()] = record.Salary.TotalGross
		}
	}

	months := retirement.TrailingMonths(year, month, n)
	for i, m := range months {
		amount, ok := gross[Period{Year: m.Year, Month: m.Month}]
		if !ok {
			slog.Warn("no confirmed payroll for trailing month", "employeeId", employeeID, "year", m.Year, "month", int(m.Month))
		}
		months[i].Gross = amount
	}
	return months, nil
}

// monthTotals checks that every record belongs to the employee and month
// before summing the confirmed ones.
func monthTotals(employeeID string, period Period, records []attendance.Record) (attendance.MonthlyTotals, error) {
	for _, record := range records {
		if record.EmployeeID != employeeID {
			return attendance.MonthlyTotals{}, apperr.Invalid("attendance.employeeId", record.EmployeeID, "belongs to another employee")
		}
		if !period.Contains(record.Date) {
			return attendance.MonthlyTotals{}, apperr.Invalid("attendance.date", record.Date.Format(time.DateOnly), "outside "+period.String())
		}
	}
	return attendance.Totals(records), nil
}

func outcome(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errors.Is(err, ErrDuplicatePayroll):
		return metrics.OutcomeDuplicate
	case errors.Is(err, ErrGenerationInProgress):
		return metrics.OutcomeInProgress
	default:
		return metrics.OutcomeFailed
	}
}

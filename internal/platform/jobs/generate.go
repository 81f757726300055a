package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/payroll"
)

// ProfileSource lists the employees to pay for a month.
type ProfileSource interface {
	ActiveProfiles(ctx context.Context, year int, month time.Month) ([]payroll.Profile, error)
}

// AttendanceSource supplies confirmed attendance; *attendance.Service
// satisfies it.
type AttendanceSource interface {
	ConfirmedMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Record, error)
}

type Generator struct {
	Payroll    *payroll.Service
	Profiles   ProfileSource
	Attendance AttendanceSource
}

type GenerationSummary struct {
	Year     int               `json:"year"`
	Month    time.Month        `json:"month"`
	Created  []string          `json:"created"`
	Skipped  []string          `json:"skipped"`
	Failed   map[string]string `json:"failed,omitempty"`
	Caveats  int               `json:"caveats"`
	Duration time.Duration     `json:"duration"`
}

// GenerateMonth generates a draft payroll for every active profile.
// Employees already generated for the period are skipped, not failed.
func (g *Generator) GenerateMonth(ctx context.Context, year int, month time.Month) (GenerationSummary, error) {
	started := time.Now()
	summary := GenerationSummary{Year: year, Month: month, Failed: map[string]string{}}

	profiles, err := g.Profiles.ActiveProfiles(ctx, year, month)
	if err != nil {
		return summary, err
	}

	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		records, err := g.Attendance.ConfirmedMonth(ctx, profile.EmployeeID, year, month)
		if err != nil {
			summary.Failed[profile.EmployeeID] = err.Error()
			slog.Warn("attendance lookup failed", "employeeId", profile.EmployeeID, "err", err)
			continue
		}
		record, err := g.Payroll.Generate(ctx, profile, year, month, records)
		switch {
		case err == nil:
			summary.Created = append(summary.Created, profile.EmployeeID)
			if len(record.Salary.Caveats) > 0 {
				summary.Caveats++
			}
		case errors.Is(err, payroll.ErrDuplicatePayroll), errors.Is(err, payroll.ErrGenerationInProgress):
			summary.Skipped = append(summary.Skipped, profile.EmployeeID)
		default:
			summary.Failed[profile.EmployeeID] = err.Error()
			slog.Warn("payroll generation failed", "employeeId", profile.EmployeeID, "year", year, "month", int(month), "err", err)
		}
	}

	summary.Duration = time.Since(started)
	if len(summary.Failed) > 0 {
		return summary, errors.New("payroll generation failed for some employees")
	}
	return summary, nil
}

// StaticProfiles serves a fixed profile list, e.g. loaded from a file.
type StaticProfiles []payroll.Profile

func (p StaticProfiles) ActiveProfiles(_ context.Context, _ int, _ time.Month) ([]payroll.Profile, error) {
	return p, nil
}

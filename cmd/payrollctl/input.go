package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"hrpay/internal/domain/apperr"
	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/leave"
	"hrpay/internal/domain/payroll"
)

const dateLayout = "2006-01-02"

// punch is one attendance line of an input file.
type punch struct {
	EmployeeID   string              `json:"employeeId"`
	Date         string              `json:"date"`
	ClockIn      string              `json:"clockIn"`
	ClockOut     string              `json:"clockOut"`
	BreakMinutes int                 `json:"breakMinutes"`
	WorkType     attendance.WorkType `json:"workType"`
}

func (p punch) input() (attendance.RecordInput, error) {
	date, err := parseDate("date", p.Date)
	if err != nil {
		return attendance.RecordInput{}, err
	}
	workType := p.WorkType
	if workType == "" {
		workType = attendance.WorkTypeNormal
	}
	return attendance.RecordInput{
		EmployeeID:   p.EmployeeID,
		Date:         date,
		ClockIn:      p.ClockIn,
		ClockOut:     p.ClockOut,
		BreakMinutes: p.BreakMinutes,
		WorkType:     workType,
	}, nil
}

// confirmedRecords builds records from punches without persisting them.
// Every record is treated as confirmed.
func confirmedRecords(punches []punch, at time.Time) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0, len(punches))
	for i, p := range punches {
		in, err := p.input()
		if err != nil {
			return nil, fmt.Errorf("punch %d: %w", i, err)
		}
		record, err := attendance.NewRecord(in.EmployeeID, in.Date, in.ClockIn, in.ClockOut, in.BreakMinutes, in.WorkType)
		if err != nil {
			return nil, fmt.Errorf("punch %d: %w", i, err)
		}
		record.Confirm(at)
		records = append(records, record)
	}
	return records, nil
}

// leaveLine is one leave request of an input file.
type leaveLine struct {
	EmployeeID string       `json:"employeeId"`
	Type       leave.Type   `json:"type"`
	Status     leave.Status `json:"status"`
	StartDate  string       `json:"startDate"`
	EndDate    string       `json:"endDate"`
	StartHalf  bool         `json:"startHalf"`
	EndHalf    bool         `json:"endHalf"`
}

func (l leaveLine) record() (leave.Record, error) {
	start, err := parseDate("startDate", l.StartDate)
	if err != nil {
		return leave.Record{}, err
	}
	end, err := parseDate("endDate", l.EndDate)
	if err != nil {
		return leave.Record{}, err
	}
	record, err := leave.NewRequest(l.EmployeeID, l.Type, start, end, l.StartHalf, l.EndHalf, "")
	if err != nil {
		return leave.Record{}, err
	}
	if l.Status != "" {
		record.Status = l.Status
	}
	return record, record.Validate()
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func readProfile(path string) (payroll.Profile, error) {
	var profile payroll.Profile
	return profile, readJSON(path, &profile)
}

func readProfiles(path string) ([]payroll.Profile, error) {
	var profiles []payroll.Profile
	return profiles, readJSON(path, &profiles)
}

func readPunches(path string) ([]punch, error) {
	var punches []punch
	return punches, readJSON(path, &punches)
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Invalid(field, value, "must be YYYY-MM-DD")
	}
	return t, nil
}

// periodFlags resolves --year/--month, defaulting to last month.
func periodFlags(year, month int, now time.Time) (int, time.Month) {
	if year == 0 || month == 0 {
		prev := payroll.Period{Year: now.Year(), Month: now.Month()}.Prev()
		if year == 0 {
			year = prev.Year
		}
		if month == 0 {
			month = int(prev.Month)
		}
	}
	return year, time.Month(month)
}

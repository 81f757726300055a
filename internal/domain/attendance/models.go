package attendance

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"hrpay/internal/domain/apperr"
)

type WorkType string

const (
	WorkTypeNormal            WorkType = "NORMAL"
	WorkTypeRemote            WorkType = "REMOTE"
	WorkTypeBusinessTrip      WorkType = "BUSINESS_TRIP"
	WorkTypeHoliday           WorkType = "HOLIDAY"
	WorkTypeSubstituteHoliday WorkType = "SUBSTITUTE_HOLIDAY"
)

func (w WorkType) Valid() bool {
	switch w {
	case WorkTypeNormal, WorkTypeRemote, WorkTypeBusinessTrip, WorkTypeHoliday, WorkTypeSubstituteHoliday:
		return true
	}
	return false
}

// IsHoliday reports whether the day is paid at holiday-work premiums.
func (w WorkType) IsHoliday() bool {
	return w == WorkTypeHoliday || w == WorkTypeSubstituteHoliday
}

var (
	ErrRecordNotFound  = fmt.Errorf("%w: attendance record", apperr.ErrNotFound)
	ErrRecordConfirmed = fmt.Errorf("%w: attendance record is confirmed", apperr.ErrConsistency)
	ErrDuplicateRecord = fmt.Errorf("%w: attendance already recorded for date", apperr.ErrConsistency)
)

// Record is one day's punches. Derived minutes are recomputed from the
// punches whenever they change and frozen on confirmation.
type Record struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employeeId"`
	Date             time.Time  `json:"date"`
	ClockIn          string     `json:"clockIn"`
	ClockOut         string     `json:"clockOut"`
	BreakMinutes     int        `json:"breakMinutes"`
	WorkType         WorkType   `json:"workType"`
	WorkMinutes      int        `json:"workMinutes"`
	OvertimeMinutes  int        `json:"overtimeMinutes"`
	NightWorkMinutes int        `json:"nightWorkMinutes"`
	Confirmed        bool       `json:"confirmed"`
	ConfirmedAt      *time.Time `json:"confirmedAt,omitempty"`
}

func NewRecord(employeeID string, date time.Time, clockIn, clockOut string, breakMinutes int, workType WorkType) (Record, error) {
	if employeeID == "" {
		return Record{}, apperr.Invalid("employeeId", employeeID, "required")
	}
	if workType == "" {
		workType = WorkTypeNormal
	}
	if !workType.Valid() {
		return Record{}, apperr.Invalid("workType", workType, "unknown work type")
	}
	record := Record{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       truncateDay(date),
		WorkType:   workType,
	}
	if err := record.setPunches(clockIn, clockOut, breakMinutes); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Amend replaces the punches of an unconfirmed record.
func (r *Record) Amend(clockIn, clockOut string, breakMinutes int) error {
	if r.Confirmed {
		return ErrRecordConfirmed
	}
	return r.setPunches(clockIn, clockOut, breakMinutes)
}

func (r *Record) setPunches(clockIn, clockOut string, breakMinutes int) error {
	worked, err := Classify(clockIn, clockOut, breakMinutes)
	if err != nil {
		return err
	}
	r.ClockIn = clockIn
	r.ClockOut = clockOut
	r.BreakMinutes = breakMinutes
	r.WorkMinutes = worked.WorkMinutes
	r.OvertimeMinutes = worked.OvertimeMinutes
	r.NightWorkMinutes = worked.NightWorkMinutes
	return nil
}

// Confirm is one-way; confirming twice keeps the first timestamp.
func (r *Record) Confirm(at time.Time) {
	if r.Confirmed {
		return
	}
	r.Confirmed = true
	stamp := at
	r.ConfirmedAt = &stamp
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

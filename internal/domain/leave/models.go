package leave

import (
	"time"

	"hrpay/internal/domain/apperr"
)

type Type string

const (
	TypeAnnual    Type = "ANNUAL"
	TypeHalfAM    Type = "HALF_DAY_AM"
	TypeHalfPM    Type = "HALF_DAY_PM"
	TypeSick      Type = "SICK"
	TypeFamily    Type = "FAMILY_EVENT"
	TypeMaternity Type = "MATERNITY"
	TypeUnpaid    Type = "UNPAID"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeHalfAM, TypeHalfPM, TypeSick, TypeFamily, TypeMaternity, TypeUnpaid:
		return true
	}
	return false
}

// Annual reports whether the leave is deducted from the annual entitlement.
func (t Type) Annual() bool {
	return t == TypeAnnual || t == TypeHalfAM || t == TypeHalfPM
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Record is one leave request as supplied by the approval workflow.
type Record struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Type       Type      `json:"type"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	StartHalf  bool      `json:"startHalf,omitempty"`
	EndHalf    bool      `json:"endHalf,omitempty"`
	Days       float64   `json:"days"`
	Reason     string    `json:"reason,omitempty"`
	Status     Status    `json:"status"`
}

func (r Record) Validate() error {
	if !r.Type.Valid() {
		return apperr.Invalid("type", r.Type, "unknown leave type")
	}
	if !r.Status.Valid() {
		return apperr.Invalid("status", r.Status, "unknown leave status")
	}
	if civilDate(r.EndDate).Before(civilDate(r.StartDate)) {
		return apperr.Invalid("endDate", r.EndDate.Format(time.DateOnly), "before start date")
	}
	if r.Days <= 0 {
		return apperr.Invalid("days", r.Days, "must be positive")
	}
	if r.Days*2 != float64(int(r.Days*2)) {
		return apperr.Invalid("days", r.Days, "must be a multiple of 0.5")
	}
	return nil
}

// Counts reports whether the record consumes annual leave. Pending requests
// count so the balance never promises days already asked for.
func (r Record) Counts() bool {
	return r.Type.Annual() && (r.Status == StatusApproved || r.Status == StatusPending)
}

// NewRequest builds a pending record with the day count derived from the
// date range.
func NewRequest(employeeID string, leaveType Type, start, end time.Time, startHalf, endHalf bool, reason string) (Record, error) {
	if employeeID == "" {
		return Record{}, apperr.Invalid("employeeId", employeeID, "required")
	}
	days, err := CalculateRequestDays(start, end, startHalf, endHalf)
	if err != nil {
		return Record{}, err
	}
	record := Record{
		EmployeeID: employeeID,
		Type:       leaveType,
		StartDate:  civilDate(start),
		EndDate:    civilDate(end),
		StartHalf:  startHalf,
		EndHalf:    endHalf,
		Days:       days,
		Reason:     reason,
		Status:     StatusPending,
	}
	if err := record.Validate(); err != nil {
		return Record{}, err
	}
	return record, nil
}

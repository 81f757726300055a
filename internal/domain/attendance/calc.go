package attendance

import "hrpay/internal/domain/apperr"

const (
	StandardDailyMinutes = 8 * 60
	WeeklyLimitHours     = 52
	WeeklyLimitMinutes   = WeeklyLimitHours * 60
)

// WorkTime is the statutory classification of one shift.
type WorkTime struct {
	WorkMinutes      int `json:"workMinutes"`
	OvertimeMinutes  int `json:"overtimeMinutes"`
	NightWorkMinutes int `json:"nightWorkMinutes"`
}

// WorkMinutes returns the paid minutes of a shift: end minus start (plus a
// day when the shift crosses midnight) minus the break, floored at zero.
func WorkMinutes(clockIn, clockOut string, breakMinutes int) (int, error) {
	if breakMinutes < 0 {
		return 0, apperr.Invalid("breakMinutes", breakMinutes, "must not be negative")
	}
	shift, err := ParseShift(clockIn, clockOut)
	if err != nil {
		return 0, err
	}
	return max(0, shift.Interval().Minutes()-breakMinutes), nil
}

func Overtime(workMinutes, standardMinutes int) int {
	return max(0, workMinutes-standardMinutes)
}

func NightWork(clockIn, clockOut string) (int, error) {
	shift, err := ParseShift(clockIn, clockOut)
	if err != nil {
		return 0, err
	}
	return shift.NightMinutes(), nil
}

// Classify runs the three calculations against the standard eight-hour day.
func Classify(clockIn, clockOut string, breakMinutes int) (WorkTime, error) {
	work, err := WorkMinutes(clockIn, clockOut, breakMinutes)
	if err != nil {
		return WorkTime{}, err
	}
	night, err := NightWork(clockIn, clockOut)
	if err != nil {
		return WorkTime{}, err
	}
	return WorkTime{
		WorkMinutes:      work,
		OvertimeMinutes:  Overtime(work, StandardDailyMinutes),
		NightWorkMinutes: night,
	}, nil
}

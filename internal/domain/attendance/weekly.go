package attendance

import (
	"sort"
	"time"

	"hrpay/internal/domain/apperr"
	"hrpay/internal/domain/money"
)

// WeeklyCheck is the result of comparing a Monday-to-Sunday week against the
// 52-hour statutory cap.
type WeeklyCheck struct {
	WeekStart    time.Time `json:"weekStart"`
	TotalMinutes int       `json:"totalMinutes"`
	TotalHours   float64   `json:"totalHours"`
	LimitHours   int       `json:"limitHours"`
	Pass         bool      `json:"pass"`
}

// ValidateWeeklyHours checks one Monday-to-Sunday week. Records from more
// than one week are rejected; use ValidateWeeks for longer spans.
func ValidateWeeklyHours(records []Record) (WeeklyCheck, error) {
	if len(records) > 0 {
		first := WeekStart(records[0].Date)
		for _, record := range records[1:] {
			if !WeekStart(record.Date).Equal(first) {
				return WeeklyCheck{}, apperr.Invalid("date", record.Date.Format(time.DateOnly),
					"outside the week starting "+first.Format(time.DateOnly))
			}
		}
	}
	return sumWeek(records), nil
}

func sumWeek(records []Record) WeeklyCheck {
	check := WeeklyCheck{LimitHours: WeeklyLimitHours}
	for i, record := range records {
		if i == 0 {
			check.WeekStart = WeekStart(record.Date)
		}
		check.TotalMinutes += record.WorkMinutes
	}
	check.TotalHours = tenthsOfHour(check.TotalMinutes)
	check.Pass = check.TotalMinutes <= WeeklyLimitMinutes
	return check
}

// ValidateWeeks groups records by week and checks each week, earliest first.
func ValidateWeeks(records []Record) []WeeklyCheck {
	byWeek := map[time.Time][]Record{}
	for _, record := range records {
		start := WeekStart(record.Date)
		byWeek[start] = append(byWeek[start], record)
	}
	checks := make([]WeeklyCheck, 0, len(byWeek))
	for _, week := range byWeek {
		checks = append(checks, sumWeek(week))
	}
	sort.Slice(checks, func(i, j int) bool {
		return checks[i].WeekStart.Before(checks[j].WeekStart)
	})
	return checks
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	day := truncateDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func tenthsOfHour(minutes int) float64 {
	return float64(money.RoundDiv(int64(minutes), 6)) / 10
}

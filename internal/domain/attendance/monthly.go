package attendance

// HolidayMinutes splits holiday work at the eight-hour mark.
type HolidayMinutes struct {
	Regular int `json:"regular"`
	Excess  int `json:"excess"`
}

func (h HolidayMinutes) Total() int {
	return h.Regular + h.Excess
}

// MonthlyTotals aggregates the confirmed records of one pay month. Overtime
// only counts on non-holiday days; holiday hours beyond eight are paid
// through the holiday excess premium instead.
type MonthlyTotals struct {
	Days               int            `json:"days"`
	WorkMinutes        int            `json:"workMinutes"`
	RegularMinutes     int            `json:"regularMinutes"`
	OvertimeMinutes    int            `json:"overtimeMinutes"`
	NightWorkMinutes   int            `json:"nightWorkMinutes"`
	Holiday            HolidayMinutes `json:"holiday"`
	SubstitutedHoliday HolidayMinutes `json:"substitutedHoliday"`
	Unconfirmed        int            `json:"unconfirmed"`
}

func Totals(records []Record) MonthlyTotals {
	var totals MonthlyTotals
	for _, record := range records {
		if !record.Confirmed {
			totals.Unconfirmed++
			continue
		}
		totals.Days++
		totals.WorkMinutes += record.WorkMinutes
		totals.NightWorkMinutes += record.NightWorkMinutes

		regular := min(record.WorkMinutes, StandardDailyMinutes)
		excess := record.WorkMinutes - regular
		switch record.WorkType {
		case WorkTypeHoliday:
			totals.Holiday.Regular += regular
			totals.Holiday.Excess += excess
		case WorkTypeSubstituteHoliday:
			totals.SubstitutedHoliday.Regular += regular
			totals.SubstitutedHoliday.Excess += excess
		default:
			totals.RegularMinutes += regular
			totals.OvertimeMinutes += record.OvertimeMinutes
		}
	}
	return totals
}

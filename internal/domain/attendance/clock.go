package attendance

import (
	"fmt"

	"hrpay/internal/domain/apperr"
)

const (
	MinutesPerDay = 24 * 60

	NightStart = Clock(22 * 60)
	NightEnd   = Clock(6 * 60)
)

// Clock is a time of day in minutes since midnight, 0 <= c < 1440.
type Clock int

// ParseClock accepts strict 24-hour "HH:mm" strings only.
func ParseClock(value string) (Clock, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, apperr.Invalid("time", value, "expected HH:mm")
	}
	hh, ok := twoDigits(value[0], value[1])
	if !ok || hh > 23 {
		return 0, apperr.Invalid("time", value, "hour must be 00-23")
	}
	mm, ok := twoDigits(value[3], value[4])
	if !ok || mm > 59 {
		return 0, apperr.Invalid("time", value, "minute must be 00-59")
	}
	return Clock(hh*60 + mm), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Interval is the half-open span [Start, End) in minutes on a two-day axis
// that begins at midnight of the shift's start day.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Minutes() int {
	if i.End <= i.Start {
		return 0
	}
	return i.End - i.Start
}

func (i Interval) Overlap(other Interval) int {
	start := max(i.Start, other.Start)
	end := min(i.End, other.End)
	if end <= start {
		return 0
	}
	return end - start
}

// NightWindow is 22:00 on the start day through 06:00 the next morning.
var NightWindow = Interval{Start: int(NightStart), End: MinutesPerDay + int(NightEnd)}

// Shift is a clock-in/clock-out pair. When Out is not after In the shift
// ends on the following day.
type Shift struct {
	In            Clock
	Out           Clock
	WrapsMidnight bool
}

func NewShift(in, out Clock) Shift {
	return Shift{In: in, Out: out, WrapsMidnight: out <= in}
}

func ParseShift(clockIn, clockOut string) (Shift, error) {
	in, err := ParseClock(clockIn)
	if err != nil {
		return Shift{}, fmt.Errorf("clock in: %w", err)
	}
	out, err := ParseClock(clockOut)
	if err != nil {
		return Shift{}, fmt.Errorf("clock out: %w", err)
	}
	return NewShift(in, out), nil
}

func (s Shift) Interval() Interval {
	end := int(s.Out)
	if s.WrapsMidnight {
		end += MinutesPerDay
	}
	return Interval{Start: int(s.In), End: end}
}

// Segments splits an overnight shift at midnight. A same-day shift yields a
// single segment.
func (s Shift) Segments() []Interval {
	span := s.Interval()
	if !s.WrapsMidnight {
		return []Interval{span}
	}
	return []Interval{
		{Start: span.Start, End: MinutesPerDay},
		{Start: MinutesPerDay, End: span.End},
	}
}

// NightMinutes sums each segment's overlap with the night window. Only the
// window that opens on the start day counts, so a same-day shift can only
// earn night minutes between 22:00 and midnight.
func (s Shift) NightMinutes() int {
	total := 0
	for _, segment := range s.Segments() {
		total += segment.Overlap(NightWindow)
	}
	return total
}

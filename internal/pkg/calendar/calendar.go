package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	TimeLayout  = "15:04"
)

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a UTC midnight value.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (int, int, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), int(t.Month()), nil
}

// MonthBounds returns [start, end) of the given month.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func DaysInMonth(year, month int) int {
	start, end := MonthBounds(year, month)
	return int(end.Sub(start).Hours() / 24)
}

// DaysBetween lists every day in [start, end).
func DaysBetween(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Key identifies an (employee, day) cell.
func Key(employeeID string, day time.Time) string {
	return employeeID + "|" + FormatDay(day)
}

// FormatClock renders a timestamp as HH:MM, or nil.
func FormatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(TimeLayout)
	return &s
}

// HolidayPolicy decides which weekdays are non-working.
type HolidayPolicy struct {
	weekdays map[time.Weekday]bool
}

func NewHolidayPolicy(days ...time.Weekday) HolidayPolicy {
	p := HolidayPolicy{weekdays: make(map[time.Weekday]bool, len(days))}
	for _, d := range days {
		p.weekdays[d] = true
	}
	return p
}

// DefaultHolidayPolicy treats Sunday as the only non-working day.
func DefaultHolidayPolicy() HolidayPolicy {
	return NewHolidayPolicy(time.Sunday)
}

// ParseHolidayPolicy reads a comma separated list of weekday names
// ("sunday,saturday"). An empty string yields a policy with no holidays.
func ParseHolidayPolicy(s string) (HolidayPolicy, error) {
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		d, ok := weekdayNames[name]
		if !ok {
			return HolidayPolicy{}, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, d)
	}
	return NewHolidayPolicy(days...), nil
}

func (p HolidayPolicy) IsHoliday(day time.Time) bool {
	return p.weekdays[day.Weekday()]
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

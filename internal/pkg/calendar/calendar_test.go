package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), d)

	invalid := []string{"", "2025-13-01", "2025/03/05", "05-03-2025"}
	for _, s := range invalid {
		_, err := ParseDay(s)
		assert.Error(t, err, "ParseDay(%q)", s)
	}
}

func TestDay_TruncatesToUTCMidnight(t *testing.T) {
	in := time.Date(2025, 3, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Day(in))
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 2, m)

	_, _, err = ParseMonth("2024-13")
	assert.Error(t, err)
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2025, 2, 28},
		{2025, 3, 31},
		{2025, 4, 30},
		{2025, 12, 31},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DaysInMonth(c.year, c.month), "%d-%02d", c.year, c.month)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2025, 12)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	days := DaysBetween(start, end)
	require.Len(t, days, 3)
	assert.Equal(t, "2025-03-30", FormatDay(days[0]))
	assert.Equal(t, "2025-04-01", FormatDay(days[2]))

	assert.Empty(t, DaysBetween(end, start))
}

func TestHolidayPolicy(t *testing.T) {
	sunday := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	def := DefaultHolidayPolicy()
	assert.True(t, def.IsHoliday(sunday))
	assert.False(t, def.IsHoliday(saturday))

	p, err := ParseHolidayPolicy("Sat, sunday")
	require.NoError(t, err)
	assert.True(t, p.IsHoliday(sunday))
	assert.True(t, p.IsHoliday(saturday))

	none, err := ParseHolidayPolicy("")
	require.NoError(t, err)
	assert.False(t, none.IsHoliday(sunday))

	_, err = ParseHolidayPolicy("funday")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Nil(t, FormatClock(nil))

	ts := time.Date(2025, 3, 5, 8, 7, 0, 0, time.UTC)
	got := FormatClock(&ts)
	require.NotNil(t, got)
	assert.Equal(t, "08:07", *got)
}

func TestFakeClock(t *testing.T) {
	c := NewFakeClock(time.Date(2025, 3, 5, 22, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-03-05", FormatDay(Today(c)))

	c.Advance(3 * time.Hour)
	assert.Equal(t, "2025-03-06", FormatDay(Today(c)))
}

package dashboard

import (
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/validator"
)

// ========== RANGE REQUEST ==========

// RangeRequest selects [StartDate, EndDate) for the dashboard rollup.
// CountAbsentWhenNoData falls back to the configured default when nil.
type RangeRequest struct {
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	CountAbsentWhenNoData *bool  `json:"count_absent_when_no_data,omitempty"`

	ParsedStart time.Time `json:"-"`
	ParsedEnd   time.Time `json:"-"`
}

func (r *RangeRequest) Validate(maxDays int) error {
	var errs validator.ValidationErrors

	start, err := calendar.ParseDay(r.StartDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, err2 := calendar.ParseDay(r.EndDate)
	if err2 != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if err == nil && err2 == nil {
		switch {
		case !start.Before(end):
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be after start_date (end is exclusive)",
			})
		case maxDays > 0 && end.Sub(start) > time.Duration(maxDays)*24*time.Hour:
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "range must not exceed " + validator.Itoa(maxDays) + " days",
			})
		default:
			r.ParsedStart, r.ParsedEnd = start, end
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RANGE RESPONSE ==========

// DayStats are the counts for one calendar day
type DayStats struct {
	Date    string `json:"date"` // Format: "YYYY-MM-DD"
	Working int64  `json:"working"`
	Present int64  `json:"present"`
	OnTime  int64  `json:"on_time"`
	Late    int64  `json:"late"`
	Leave   int64  `json:"leave"`
	Absent  int64  `json:"absent"`
}

// RangeTotals sums the days with percentages over present+leave+absent
type RangeTotals struct {
	Present       int64   `json:"present"`
	OnTime        int64   `json:"on_time"`
	Late          int64   `json:"late"`
	Leave         int64   `json:"leave"`
	Absent        int64   `json:"absent"`
	Total         int64   `json:"total"`
	OnTimePercent float64 `json:"on_time_percent"`
	LatePercent   float64 `json:"late_percent"`
	LeavePercent  float64 `json:"leave_percent"`
	AbsentPercent float64 `json:"absent_percent"`
}

type RangeResponse struct {
	StartDate             string      `json:"start_date"`
	EndDate               string      `json:"end_date"` // exclusive
	Working               int64       `json:"working"`
	CountAbsentWhenNoData bool        `json:"count_absent_when_no_data"`
	Days                  []DayStats  `json:"days"`
	Totals                RangeTotals `json:"totals"`
}

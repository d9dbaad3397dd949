package report

import (
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY GRID
// ========================================

type MonthlyGridRequest struct {
	Month       string   `json:"month"` // YYYY-MM
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	Backfill    bool     `json:"backfill"`

	Year     int `json:"-"`
	MonthNum int `json:"-"`
}

func (r *MonthlyGridRequest) Validate() error {
	var errs validator.ValidationErrors

	year, month, err := calendar.ParseMonth(r.Month)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	} else {
		r.Year, r.MonthNum = year, month
	}

	for _, id := range r.EmployeeIDs {
		if !validator.IsValidEmployeeID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids contains an invalid id",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MonthlyGrid struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	HeadStats HeadStats     `json:"head_stats"`
	Employees []EmployeeRef `json:"employees"`
	Days      []GridDay     `json:"days"`
}

// HeadStats are the headline percentages over populated cells only.
// LEAVE cells count toward the absent bucket.
type HeadStats struct {
	People    int     `json:"people"`
	OnTime    int     `json:"on_time"`
	Late      int     `json:"late"`
	Absent    int     `json:"absent"`
	Total     int     `json:"total"`
	OnTimePct float64 `json:"ontime_pct"`
	LatePct   float64 `json:"late_pct"`
	AbsentPct float64 `json:"absent_pct"`
}

type DayCounts struct {
	OnTime int `json:"on_time"`
	Late   int `json:"late"`
	Leave  int `json:"leave"`
	Absent int `json:"absent"`
	Blank  int `json:"blank"`
}

type GridDay struct {
	Date      string     `json:"date"`
	Day       int        `json:"day"`
	Weekday   string     `json:"weekday"`
	IsHoliday bool       `json:"is_holiday"`
	Counts    DayCounts  `json:"counts"`
	Rows      []GridCell `json:"rows"`
}

type GridCell struct {
	EmployeeID    string              `json:"employee_id"`
	EmployeeName  string              `json:"employee_name"`
	Status        UIStatus            `json:"status"`
	DayStatus     *daystatus.Status   `json:"day_status,omitempty"`
	Source        *daystatus.Source   `json:"source,omitempty"`
	ArrivalDetail *attendance.Arrival `json:"arrival_detail,omitempty"`
	CheckIn       *string             `json:"check_in,omitempty"`
	CheckOut      *string             `json:"check_out,omitempty"`
	Note          *string             `json:"note,omitempty"`
}

// ========================================
// EMPLOYEE HISTORY
// ========================================

type HistoryRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM
	Backfill   bool   `json:"backfill"`

	Year     int `json:"-"`
	MonthNum int `json:"-"`
}

func (r *HistoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id contains invalid characters",
		})
	}

	year, month, err := calendar.ParseMonth(r.Month)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	} else {
		r.Year, r.MonthNum = year, month
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type History struct {
	Employee EmployeeRef    `json:"employee"`
	Year     int            `json:"year"`
	Month    int            `json:"month"`
	Summary  HistorySummary `json:"summary"`
	Days     []HistoryDay   `json:"days"`
}

type HistorySummary struct {
	OnTime int `json:"on_time"`
	Late   int `json:"late"`
	Leave  int `json:"leave"`
	Absent int `json:"absent"`
	Blank  int `json:"blank"`
}

type HistoryDay struct {
	Date          string              `json:"date"`
	Day           int                 `json:"day"`
	Weekday       string              `json:"weekday"`
	IsHoliday     bool                `json:"is_holiday"`
	Status        UIStatus            `json:"status"`
	DayStatus     *daystatus.Status   `json:"day_status,omitempty"`
	Source        *daystatus.Source   `json:"source,omitempty"`
	ArrivalDetail *attendance.Arrival `json:"arrival_detail,omitempty"`
	CheckIn       *string             `json:"check_in,omitempty"`
	CheckOut      *string             `json:"check_out,omitempty"`
	Note          *string             `json:"note,omitempty"`
}

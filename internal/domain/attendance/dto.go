package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CreateAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	CheckIn    string  `json:"check_in"`
	CheckOut   *string `json:"check_out,omitempty"`
	Arrival    string  `json:"arrival"`

	// Parsed by Validate
	ParsedWorkDate time.Time  `json:"-"`
	ParsedCheckIn  time.Time  `json:"-"`
	ParsedCheckOut *time.Time `json:"-"`
}

func (r *CreateAttendanceRequest) Validate() error {
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

	if day, err := calendar.ParseDay(r.WorkDate); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedWorkDate = day
	}

	if t, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be an RFC3339 timestamp",
		})
	} else {
		r.ParsedCheckIn = t.UTC()
	}

	if r.CheckOut != nil && *r.CheckOut != "" {
		t, ok := validator.IsValidDateTime(*r.CheckOut)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		} else if !r.ParsedCheckIn.IsZero() && !t.After(r.ParsedCheckIn) {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: ErrCheckOutBeforeCheckIn.Error(),
			})
		} else {
			utc := t.UTC()
			r.ParsedCheckOut = &utc
		}
	}

	if !Arrival(strings.ToUpper(r.Arrival)).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "arrival",
			Message: "arrival must be ON_TIME or LATE",
		})
	} else {
		r.Arrival = strings.ToUpper(r.Arrival)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	WorkDate *string `json:"work_date,omitempty"`
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Arrival  *string `json:"arrival,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.WorkDate != nil {
		if _, err := calendar.ParseDay(*r.WorkDate); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "work_date",
				Message: "work_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an RFC3339 timestamp",
			})
		}
	}

	if r.CheckOut != nil && *r.CheckOut != "" {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		}
	}

	if r.Arrival != nil && !Arrival(strings.ToUpper(*r.Arrival)).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "arrival",
			Message: "arrival must be ON_TIME or LATE",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply merges the update into an existing fact. An empty check_out clears it.
func (r UpdateAttendanceRequest) Apply(existing Attendance) (Attendance, error) {
	updated := existing
	if r.WorkDate != nil {
		day, err := calendar.ParseDay(*r.WorkDate)
		if err != nil {
			return Attendance{}, err
		}
		updated.WorkDate = day
	}
	if r.CheckIn != nil {
		t, _ := validator.IsValidDateTime(*r.CheckIn)
		updated.CheckIn = t.UTC()
	}
	if r.CheckOut != nil {
		if *r.CheckOut == "" {
			updated.CheckOut = nil
		} else {
			t, _ := validator.IsValidDateTime(*r.CheckOut)
			utc := t.UTC()
			updated.CheckOut = &utc
		}
	}
	if r.Arrival != nil {
		updated.Arrival = Arrival(strings.ToUpper(*r.Arrival))
	}
	if updated.CheckOut != nil && !updated.CheckOut.After(updated.CheckIn) {
		return Attendance{}, validator.ValidationErrors{{
			Field:   "check_out",
			Message: ErrCheckOutBeforeCheckIn.Error(),
		}}
	}
	return updated, nil
}

type ListAttendanceRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

// ToFilter validates the request and converts it. EndDate is exclusive.
func (r ListAttendanceRequest) ToFilter() (AttendanceFilter, error) {
	var errs validator.ValidationErrors
	var filter AttendanceFilter

	if r.EmployeeID != nil && *r.EmployeeID != "" {
		filter.EmployeeIDs = []string{*r.EmployeeID}
	}
	if r.StartDate != nil && *r.StartDate != "" {
		d, err := calendar.ParseDay(*r.StartDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		} else {
			filter.StartDate = &d
		}
	}
	if r.EndDate != nil && *r.EndDate != "" {
		d, err := calendar.ParseDay(*r.EndDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		} else {
			filter.EndDate = &d
		}
	}
	if filter.StartDate != nil && filter.EndDate != nil && !filter.StartDate.Before(*filter.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be after start_date"})
	}

	if len(errs) > 0 {
		return AttendanceFilter{}, errs
	}
	return filter, nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	WorkDate     string  `json:"work_date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     *string `json:"check_out,omitempty"`
	Arrival      Arrival `json:"arrival"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		WorkDate:     calendar.FormatDay(a.WorkDate),
		CheckIn:      a.CheckIn.UTC().Format(time.RFC3339),
		Arrival:      a.Arrival,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.CheckOut != nil {
		out := a.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &out
	}
	return resp
}

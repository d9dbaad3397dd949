package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	LeaveDate  string  `json:"leave_date"`
	LeaveType  string  `json:"leave_type"`
	Reason     *string `json:"reason,omitempty"`

	ParsedLeaveDate time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
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

	if day, err := calendar.ParseDay(r.LeaveDate); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_date",
			Message: "leave_date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedLeaveDate = day
	}

	r.LeaveType = strings.TrimSpace(r.LeaveType)
	if r.LeaveType == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if len(r.LeaveType) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must not exceed 50 characters",
		})
	}

	if r.Reason != nil && len(*r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveRequest struct {
	ID        string  `json:"-"`
	LeaveDate *string `json:"leave_date,omitempty"`
	LeaveType *string `json:"leave_type,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.LeaveDate != nil {
		if _, err := calendar.ParseDay(*r.LeaveDate); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_date",
				Message: "leave_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.LeaveType != nil && validator.IsEmpty(*r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type cannot be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the update into an existing leave. An empty reason clears it.
func (r UpdateLeaveRequest) Apply(existing Leave) Leave {
	updated := existing
	if r.LeaveDate != nil {
		if day, err := calendar.ParseDay(*r.LeaveDate); err == nil {
			updated.LeaveDate = day
		}
	}
	if r.LeaveType != nil {
		updated.LeaveType = strings.TrimSpace(*r.LeaveType)
	}
	if r.Reason != nil {
		if *r.Reason == "" {
			updated.Reason = nil
		} else {
			reason := *r.Reason
			updated.Reason = &reason
		}
	}
	return updated
}

type ListLeaveRequest struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
}

// ToFilter validates the request and converts it. EndDate is exclusive.
func (r ListLeaveRequest) ToFilter() (LeaveFilter, error) {
	var errs validator.ValidationErrors
	var filter LeaveFilter

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
		return LeaveFilter{}, errs
	}
	return filter, nil
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LeaveDate    string  `json:"leave_date"`
	LeaveType    string  `json:"leave_type"`
	Reason       *string `json:"reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func ToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		LeaveDate:    calendar.FormatDay(l.LeaveDate),
		LeaveType:    l.LeaveType,
		Reason:       l.Reason,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}

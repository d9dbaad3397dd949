package daystatus

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/validator"
)

// ========================================
// DAY STATUS DTOs
// ========================================

type DayKeyRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	ParsedDate time.Time `json:"-"`
}

func (r *DayKeyRequest) Validate() error {
	var errs validator.ValidationErrors
	r.validateInto(&errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *DayKeyRequest) validateInto(errs *validator.ValidationErrors) {
	if validator.IsEmpty(r.EmployeeID) {
		*errs = append(*errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		*errs = append(*errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id contains invalid characters",
		})
	}

	day, err := calendar.ParseDay(r.Date)
	if err != nil {
		*errs = append(*errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
		return
	}
	r.ParsedDate = day
}

type RecomputeRequest struct {
	DayKeyRequest
	Force bool `json:"force"`
}

type SetOverrideRequest struct {
	DayKeyRequest
	Status        string  `json:"status"`
	ArrivalDetail *string `json:"arrival_detail,omitempty"`
}

func (r *SetOverrideRequest) Validate() error {
	var errs validator.ValidationErrors
	r.DayKeyRequest.validateInto(&errs)

	status := Status(strings.ToUpper(strings.TrimSpace(r.Status)))
	if !status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of NOT_CHECKED_IN, WORKING, OFF_DUTY, ON_LEAVE, ABSENT",
		})
	} else {
		r.Status = string(status)
	}

	if r.ArrivalDetail != nil {
		arrival := attendance.Arrival(strings.ToUpper(strings.TrimSpace(*r.ArrivalDetail)))
		switch {
		case !arrival.IsValid():
			errs = append(errs, validator.ValidationError{
				Field:   "arrival_detail",
				Message: "arrival_detail must be ON_TIME or LATE",
			})
		case status.IsValid() && !status.IsPresent():
			errs = append(errs, validator.ValidationError{
				Field:   "arrival_detail",
				Message: "arrival_detail is only allowed with WORKING or OFF_DUTY",
			})
		default:
			s := string(arrival)
			r.ArrivalDetail = &s
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Snapshot converts a validated override into the pinned snapshot.
func (r SetOverrideRequest) Snapshot() Snapshot {
	snap := Snapshot{Status: Status(r.Status), Source: SourceManual}
	if r.ArrivalDetail != nil {
		a := attendance.Arrival(*r.ArrivalDetail)
		snap.ArrivalDetail = &a
	}
	return snap
}

type SnapshotResponse struct {
	Status        Status              `json:"status"`
	Source        Source              `json:"source"`
	ArrivalDetail *attendance.Arrival `json:"arrival_detail,omitempty"`
}

type RecordResponse struct {
	SnapshotResponse
	UpdatedAt string `json:"updated_at"`
}

type DayStatusResponse struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	Pinned     bool             `json:"pinned"`
	Resolved   SnapshotResponse `json:"resolved"`
	Stored     *RecordResponse  `json:"stored,omitempty"`
}

func ToSnapshotResponse(s Snapshot) SnapshotResponse {
	return SnapshotResponse{Status: s.Status, Source: s.Source, ArrivalDetail: s.ArrivalDetail}
}

func NewDayStatusResponse(employeeID string, day time.Time, resolved Snapshot, stored *Record) DayStatusResponse {
	resp := DayStatusResponse{
		EmployeeID: employeeID,
		Date:       calendar.FormatDay(day),
		Resolved:   ToSnapshotResponse(resolved),
	}
	if stored != nil {
		resp.Pinned = stored.IsPinned()
		resp.Stored = &RecordResponse{
			SnapshotResponse: ToSnapshotResponse(stored.Snapshot()),
			UpdatedAt:        stored.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp
}

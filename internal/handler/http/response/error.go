package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, jwt.ErrAdminRoleRequired):
		Forbidden(w, "Admin role required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance already recorded for this employee and date")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave not found")

	// Day status domain errors
	case errors.Is(err, daystatus.ErrDayStatusNotFound):
		NotFound(w, "Day status not found")
	case errors.Is(err, daystatus.ErrOverrideNotPresent):
		NotFound(w, "No manual override for this employee and date")
	case errors.Is(err, daystatus.ErrInvalidOverride):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrNoEmployees):
		NotFound(w, "None of the requested employees exist")

	// Storage did not answer in time; never rendered as an empty report
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		slog.Warn("Request aborted before storage answered", "error", err)
		ServiceUnavailable(w, "Data source temporarily unavailable, retry the request")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

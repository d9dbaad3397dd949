package attendance

import (
	"context"
	"time"
)

// AttendanceFilter narrows range reads. EndDate is exclusive.
type AttendanceFilter struct {
	EmployeeIDs []string
	StartDate   *time.Time
	EndDate     *time.Time
}

// AttendanceRepository defines data access methods for attendance facts.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns the earliest check-in for the day, or nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// Delete removes an attendance record
	Delete(ctx context.Context, id string) error

	// List returns facts ordered by work_date, employee_id, check_in, id
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
}

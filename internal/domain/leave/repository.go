package leave

import (
	"context"
	"time"
)

// LeaveFilter narrows range reads. EndDate is exclusive.
type LeaveFilter struct {
	EmployeeIDs []string
	StartDate   *time.Time
	EndDate     *time.Time
}

// LeaveRepository - interface for leaves table
type LeaveRepository interface {
	Create(ctx context.Context, leave Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	// GetByEmployeeAndDate returns any leave on the day, or nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Leave, error)
	Update(ctx context.Context, leave Leave) error
	Delete(ctx context.Context, id string) error
	// List returns leaves ordered by leave_date, employee_id, created_at, id
	List(ctx context.Context, filter LeaveFilter) ([]Leave, error)
}

package leave

import (
	"time"
)

// DefaultNote labels a leave cell when neither reason nor type is known.
const DefaultNote = "leave"

// Leave is one day of approved leave for an employee.
type Leave struct {
	ID         string
	EmployeeID string
	LeaveDate  time.Time
	LeaveType  string
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// Note returns the reason, falling back to the leave type and then DefaultNote.
func (l Leave) Note() string {
	if l.Reason != nil && *l.Reason != "" {
		return *l.Reason
	}
	if l.LeaveType != "" {
		return l.LeaveType
	}
	return DefaultNote
}

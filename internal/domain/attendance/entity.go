package attendance

import (
	"time"
)

// Arrival classifies a check-in relative to the schedule.
type Arrival string

const (
	ArrivalOnTime Arrival = "ON_TIME"
	ArrivalLate   Arrival = "LATE"
)

func (a Arrival) IsValid() bool {
	return a == ArrivalOnTime || a == ArrivalLate
}

// Attendance is one check-in/check-out fact for an employee on a work date.
type Attendance struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	CheckIn    time.Time
	CheckOut   *time.Time
	Arrival    Arrival
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

func (a Attendance) IsLate() bool {
	return a.Arrival == ArrivalLate
}

func (a Attendance) HasCheckedOut() bool {
	return a.CheckOut != nil
}

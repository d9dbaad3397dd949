package daystatus

import (
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
)

// Status is the derived attendance state of one employee on one day.
type Status string

const (
	StatusNotCheckedIn Status = "NOT_CHECKED_IN"
	StatusWorking      Status = "WORKING"
	StatusOffDuty      Status = "OFF_DUTY"
	StatusOnLeave      Status = "ON_LEAVE"
	StatusAbsent       Status = "ABSENT"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNotCheckedIn, StatusWorking, StatusOffDuty, StatusOnLeave, StatusAbsent:
		return true
	}
	return false
}

// IsPresent reports whether the status originates from a check-in.
func (s Status) IsPresent() bool {
	return s == StatusWorking || s == StatusOffDuty
}

// Source records which fact produced a status.
type Source string

const (
	SourceSystem     Source = "SYSTEM"
	SourceAttendance Source = "ATTENDANCE"
	SourceLeave      Source = "LEAVE"
	SourceManual     Source = "MANUAL"
)

func (s Source) IsValid() bool {
	switch s {
	case SourceSystem, SourceAttendance, SourceLeave, SourceManual:
		return true
	}
	return false
}

// Record is a materialized day status keyed by (EmployeeID, WorkDate).
type Record struct {
	EmployeeID    string
	WorkDate      time.Time
	Status        Status
	Source        Source
	ArrivalDetail *attendance.Arrival
	UpdatedAt     time.Time
}

// IsPinned reports whether automatic recomputation must leave the record alone.
func (r Record) IsPinned() bool {
	return r.Source == SourceManual
}

func (r Record) Snapshot() Snapshot {
	return Snapshot{Status: r.Status, Source: r.Source, ArrivalDetail: r.ArrivalDetail}
}

// Snapshot is what a day status resolves to at a point in time.
type Snapshot struct {
	Status        Status
	Source        Source
	ArrivalDetail *attendance.Arrival
}

// Equal compares status, source and arrival detail.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Status != o.Status || s.Source != o.Source {
		return false
	}
	if s.ArrivalDetail == nil || o.ArrivalDetail == nil {
		return s.ArrivalDetail == nil && o.ArrivalDetail == nil
	}
	return *s.ArrivalDetail == *o.ArrivalDetail
}

func (s Snapshot) ToRecord(employeeID string, workDate time.Time, now time.Time) Record {
	return Record{
		EmployeeID:    employeeID,
		WorkDate:      workDate,
		Status:        s.Status,
		Source:        s.Source,
		ArrivalDetail: s.ArrivalDetail,
		UpdatedAt:     now,
	}
}

package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrAttendanceExists      = errors.New("attendance already recorded for this employee and date")
	ErrCheckOutBeforeCheckIn = errors.New("check-out must be after check-in")
)

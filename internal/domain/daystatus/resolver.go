package daystatus

import (
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
)

// Facts are the inputs for resolving one (employee, day).
type Facts struct {
	Stored     *Record
	Leave      *leave.Leave
	Attendance *attendance.Attendance
}

// Derive applies the precedence chain: manual pin, leave, attendance, then the
// system fallback (holiday, past day, not yet checked in). today is the as-of day.
func Derive(f Facts, day, today time.Time, holidays calendar.HolidayPolicy) Snapshot {
	if f.Stored != nil && f.Stored.IsPinned() {
		return f.Stored.Snapshot()
	}

	if f.Leave != nil {
		return Snapshot{Status: StatusOnLeave, Source: SourceLeave}
	}

	if f.Attendance != nil {
		arrival := f.Attendance.Arrival
		status := StatusWorking
		if f.Attendance.HasCheckedOut() {
			status = StatusOffDuty
		}
		return Snapshot{Status: status, Source: SourceAttendance, ArrivalDetail: &arrival}
	}

	day = calendar.Day(day)
	switch {
	case holidays.IsHoliday(day):
		return Snapshot{Status: StatusOffDuty, Source: SourceSystem}
	case day.Before(calendar.Day(today)):
		return Snapshot{Status: StatusAbsent, Source: SourceSystem}
	default:
		return Snapshot{Status: StatusNotCheckedIn, Source: SourceSystem}
	}
}

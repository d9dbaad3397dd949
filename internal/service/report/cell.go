package report

import (
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
)

// cellFacts are the stored record and raw facts indexed for one (employee, day).
type cellFacts struct {
	record     *daystatus.Record
	attendance *attendance.Attendance
	leave      *leave.Leave
}

// cellView is the presentation of one cell shared by the grid and the history.
type cellView struct {
	status        report.UIStatus
	dayStatus     *daystatus.Status
	source        *daystatus.Source
	arrivalDetail *attendance.Arrival
	checkIn       *string
	checkOut      *string
	note          *string
}

// mapping controls how a stored NOT_CHECKED_IN is displayed.
type mapping int

const (
	// gridMapping leaves NOT_CHECKED_IN blank.
	gridMapping mapping = iota
	// historyMapping folds NOT_CHECKED_IN into ABSENT.
	historyMapping
)

func buildCell(f cellFacts, m mapping) cellView {
	var v cellView

	if f.record == nil {
		switch {
		case f.attendance != nil:
			v.status = report.UIStatus(f.attendance.Arrival)
			v.withAttendance(f.attendance)
		case f.leave != nil:
			v.status = report.UIStatusLeave
			v.note = leaveNote(f.leave)
		}
		return v
	}

	status, source := f.record.Status, f.record.Source
	v.dayStatus, v.source = &status, &source

	switch status {
	case daystatus.StatusWorking, daystatus.StatusOffDuty:
		// a LATE attendance fact beats the "present" derivation; a fact-less
		// holiday stored as OFF_DUTY reads as ON_TIME too
		v.status = report.UIStatusOnTime
		if f.attendance != nil {
			if f.attendance.IsLate() {
				v.status = report.UIStatusLate
			}
			v.withAttendance(f.attendance)
		} else {
			v.arrivalDetail = f.record.ArrivalDetail
		}
	case daystatus.StatusOnLeave:
		v.status = report.UIStatusLeave
		v.note = leaveNote(f.leave)
	case daystatus.StatusAbsent:
		v.status = report.UIStatusAbsent
	case daystatus.StatusNotCheckedIn:
		if m == historyMapping {
			v.status = report.UIStatusAbsent
		}
	}
	return v
}

func (v *cellView) withAttendance(a *attendance.Attendance) {
	arrival := a.Arrival
	v.arrivalDetail = &arrival
	v.checkIn = calendar.FormatClock(&a.CheckIn)
	v.checkOut = calendar.FormatClock(a.CheckOut)
}

func leaveNote(l *leave.Leave) *string {
	note := leave.DefaultNote
	if l != nil {
		note = l.Note()
	}
	return &note
}

// factIndex keys records and facts by calendar.Key. Attendance and leave keep
// the first fact per cell, which is the earliest given the repository ordering.
type factIndex struct {
	records     map[string]*daystatus.Record
	attendances map[string]*attendance.Attendance
	leaves      map[string]*leave.Leave
}

func newFactIndex(records []daystatus.Record, attendances []attendance.Attendance, leaves []leave.Leave) factIndex {
	idx := factIndex{
		records:     make(map[string]*daystatus.Record, len(records)),
		attendances: make(map[string]*attendance.Attendance, len(attendances)),
		leaves:      make(map[string]*leave.Leave, len(leaves)),
	}
	for i := range records {
		idx.records[calendar.Key(records[i].EmployeeID, records[i].WorkDate)] = &records[i]
	}
	for i := range attendances {
		key := calendar.Key(attendances[i].EmployeeID, attendances[i].WorkDate)
		if _, ok := idx.attendances[key]; !ok {
			idx.attendances[key] = &attendances[i]
		}
	}
	for i := range leaves {
		key := calendar.Key(leaves[i].EmployeeID, leaves[i].LeaveDate)
		if _, ok := idx.leaves[key]; !ok {
			idx.leaves[key] = &leaves[i]
		}
	}
	return idx
}

func (idx factIndex) cell(key string) cellFacts {
	return cellFacts{
		record:     idx.records[key],
		attendance: idx.attendances[key],
		leave:      idx.leaves[key],
	}
}

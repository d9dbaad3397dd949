package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	employeeRepo   employee.EmployeeRepository

	countAbsentWhenNoData bool
	maxRangeDays          int
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	countAbsentWhenNoData bool,
	maxRangeDays int,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceRepo:        attendanceRepo,
		leaveRepo:             leaveRepo,
		employeeRepo:          employeeRepo,
		countAbsentWhenNoData: countAbsentWhenNoData,
		maxRangeDays:          maxRangeDays,
	}
}

// BuildRange implements dashboard.DashboardService.
// Counts come from raw facts only; stored day statuses are not consulted.
func (s *DashboardServiceImpl) BuildRange(ctx context.Context, start, endExclusive time.Time, countAbsentWhenNoData bool) ([]dashboard.DayStats, error) {
	start, endExclusive = calendar.Day(start), calendar.Day(endExclusive)

	var (
		working     int64
		attendances []attendance.Attendance
		leaves      []leave.Leave
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		working, err = s.employeeRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		attendances, err = s.attendanceRepo.List(gctx, attendance.AttendanceFilter{StartDate: &start, EndDate: &endExclusive})
		if err != nil {
			return fmt.Errorf("failed to list attendances: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		leaves, err = s.leaveRepo.List(gctx, leave.LeaveFilter{StartDate: &start, EndDate: &endExclusive})
		if err != nil {
			return fmt.Errorf("failed to list leaves: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	days := calendar.DaysBetween(start, endExclusive)
	stats := make([]dashboard.DayStats, len(days))
	byDate := make(map[string]*dashboard.DayStats, len(days))
	for i, d := range days {
		stats[i] = dashboard.DayStats{Date: calendar.FormatDay(d), Working: working}
		byDate[stats[i].Date] = &stats[i]
	}

	attended := make(map[string]bool, len(attendances))
	for _, a := range attendances {
		key := calendar.Key(a.EmployeeID, a.WorkDate)
		if attended[key] {
			continue
		}
		attended[key] = true

		ds, ok := byDate[calendar.FormatDay(a.WorkDate)]
		if !ok {
			continue
		}
		if a.IsLate() {
			ds.Late++
		} else {
			ds.OnTime++
		}
	}

	onLeave := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		key := calendar.Key(l.EmployeeID, l.LeaveDate)
		if onLeave[key] || attended[key] {
			continue
		}
		onLeave[key] = true

		if ds, ok := byDate[calendar.FormatDay(l.LeaveDate)]; ok {
			ds.Leave++
		}
	}

	for i := range stats {
		ds := &stats[i]
		ds.Present = ds.OnTime + ds.Late
		// a day with no recorded activity is not a mass absence unless asked
		if ds.Present+ds.Leave > 0 || countAbsentWhenNoData {
			ds.Absent = max(0, ds.Working-ds.Present-ds.Leave)
		}
	}

	return stats, nil
}

// GetRange implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetRange(ctx context.Context, req dashboard.RangeRequest) (*dashboard.RangeResponse, error) {
	if err := req.Validate(s.maxRangeDays); err != nil {
		return nil, err
	}

	countAbsent := s.countAbsentWhenNoData
	if req.CountAbsentWhenNoData != nil {
		countAbsent = *req.CountAbsentWhenNoData
	}

	days, err := s.BuildRange(ctx, req.ParsedStart, req.ParsedEnd, countAbsent)
	if err != nil {
		return nil, err
	}

	resp := &dashboard.RangeResponse{
		StartDate:             calendar.FormatDay(req.ParsedStart),
		EndDate:               calendar.FormatDay(req.ParsedEnd),
		CountAbsentWhenNoData: countAbsent,
		Days:                  days,
	}
	if len(days) > 0 {
		resp.Working = days[0].Working
	}

	t := &resp.Totals
	for _, d := range days {
		t.Present += d.Present
		t.OnTime += d.OnTime
		t.Late += d.Late
		t.Leave += d.Leave
		t.Absent += d.Absent
	}
	t.Total = t.Present + t.Leave + t.Absent
	t.OnTimePercent = percent(t.OnTime, t.Total)
	t.LatePercent = percent(t.Late, t.Total)
	t.LeavePercent = percent(t.Leave, t.Total)
	t.AbsentPercent = percent(t.Absent, t.Total)

	return resp, nil
}

func percent(part, total int64) float64 {
	if total < 1 {
		total = 1
	}
	return math.Round(float64(part)*10000/float64(total)) / 100
}

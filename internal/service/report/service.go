package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// backfillConcurrency bounds parallel recomputes during a persisting read.
const backfillConcurrency = 4

type ReportServiceImpl struct {
	dayStatusRepo  daystatus.DayStatusRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	employeeRepo   employee.EmployeeRepository
	materializer   daystatus.Materializer
	holidays       calendar.HolidayPolicy
	clock          calendar.Clock
	metrics        *metrics.DayStatusMetrics
}

func NewReportService(
	dayStatusRepo daystatus.DayStatusRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	materializer daystatus.Materializer,
	holidays calendar.HolidayPolicy,
	clock calendar.Clock,
	m *metrics.DayStatusMetrics,
) report.ReportService {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &ReportServiceImpl{
		dayStatusRepo:  dayStatusRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		materializer:   materializer,
		holidays:       holidays,
		clock:          clock,
		metrics:        m,
	}
}

// loadMonth fetches day statuses and raw facts for [start, end) in parallel.
func (s *ReportServiceImpl) loadMonth(ctx context.Context, employeeIDs []string, start, end time.Time) (factIndex, error) {
	var (
		records     []daystatus.Record
		attendances []attendance.Attendance
		leaves      []leave.Leave
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.dayStatusRepo.List(gctx, employeeIDs, start, end)
		if err != nil {
			return fmt.Errorf("failed to list day statuses: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		attendances, err = s.attendanceRepo.List(gctx, attendance.AttendanceFilter{
			EmployeeIDs: employeeIDs,
			StartDate:   &start,
			EndDate:     &end,
		})
		if err != nil {
			return fmt.Errorf("failed to list attendances: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		leaves, err = s.leaveRepo.List(gctx, leave.LeaveFilter{
			EmployeeIDs: employeeIDs,
			StartDate:   &start,
			EndDate:     &end,
		})
		if err != nil {
			return fmt.Errorf("failed to list leaves: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return factIndex{}, err
	}

	return newFactIndex(records, attendances, leaves), nil
}

// BuildGrid implements report.ReportService.
func (s *ReportServiceImpl) BuildGrid(ctx context.Context, year, month int, employees []employee.Employee, opts report.ReadOptions) (report.MonthlyGrid, error) {
	start, end := calendar.MonthBounds(year, month)

	ids := make([]string, 0, len(employees))
	refs := make([]report.EmployeeRef, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
		refs = append(refs, report.EmployeeRef{ID: e.ID, Name: e.Name})
	}

	grid := report.MonthlyGrid{
		Year:      year,
		Month:     month,
		Employees: refs,
		Days:      []report.GridDay{},
	}
	grid.HeadStats.People = len(employees)

	// an empty roster still yields one column per day, each with no rows
	var idx factIndex
	if len(employees) > 0 {
		var err error
		if idx, err = s.loadMonth(ctx, ids, start, end); err != nil {
			return report.MonthlyGrid{}, err
		}
	}

	var missing []missingCell
	for _, d := range calendar.DaysBetween(start, end) {
		gd := report.GridDay{
			Date:      calendar.FormatDay(d),
			Day:       d.Day(),
			Weekday:   d.Weekday().String(),
			IsHoliday: s.holidays.IsHoliday(d),
			Rows:      make([]report.GridCell, 0, len(employees)),
		}

		for _, e := range employees {
			key := calendar.Key(e.ID, d)
			facts := idx.cell(key)
			if facts.record == nil {
				missing = append(missing, missingCell{employeeID: e.ID, day: d})
			}

			v := buildCell(facts, gridMapping)
			gd.Rows = append(gd.Rows, report.GridCell{
				EmployeeID:    e.ID,
				EmployeeName:  e.Name,
				Status:        v.status,
				DayStatus:     v.dayStatus,
				Source:        v.source,
				ArrivalDetail: v.arrivalDetail,
				CheckIn:       v.checkIn,
				CheckOut:      v.checkOut,
				Note:          v.note,
			})
			tallyDay(&gd.Counts, v.status)
		}

		grid.HeadStats.OnTime += gd.Counts.OnTime
		grid.HeadStats.Late += gd.Counts.Late
		grid.HeadStats.Absent += gd.Counts.Absent + gd.Counts.Leave
		grid.Days = append(grid.Days, gd)
	}

	hs := &grid.HeadStats
	hs.Total = hs.OnTime + hs.Late + hs.Absent
	hs.OnTimePct = percent(hs.OnTime, hs.Total)
	hs.LatePct = percent(hs.Late, hs.Total)
	hs.AbsentPct = percent(hs.Absent, hs.Total)

	if opts.Persist {
		if err := s.backfill(ctx, missing); err != nil {
			return report.MonthlyGrid{}, err
		}
	}

	return grid, nil
}

// BuildHistory implements report.ReportService.
func (s *ReportServiceImpl) BuildHistory(ctx context.Context, employeeID string, year, month int, opts report.ReadOptions) (report.History, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.History{}, err
	}

	start, end := calendar.MonthBounds(year, month)
	idx, err := s.loadMonth(ctx, []string{emp.ID}, start, end)
	if err != nil {
		return report.History{}, err
	}

	history := report.History{
		Employee: report.EmployeeRef{ID: emp.ID, Name: emp.Name},
		Year:     year,
		Month:    month,
		Days:     make([]report.HistoryDay, 0, calendar.DaysInMonth(year, month)),
	}

	var missing []missingCell
	for _, d := range calendar.DaysBetween(start, end) {
		facts := idx.cell(calendar.Key(emp.ID, d))
		if facts.record == nil {
			missing = append(missing, missingCell{employeeID: emp.ID, day: d})
		}

		v := buildCell(facts, historyMapping)
		history.Days = append(history.Days, report.HistoryDay{
			Date:          calendar.FormatDay(d),
			Day:           d.Day(),
			Weekday:       d.Weekday().String(),
			IsHoliday:     s.holidays.IsHoliday(d),
			Status:        v.status,
			DayStatus:     v.dayStatus,
			Source:        v.source,
			ArrivalDetail: v.arrivalDetail,
			CheckIn:       v.checkIn,
			CheckOut:      v.checkOut,
			Note:          v.note,
		})

		switch v.status {
		case report.UIStatusOnTime:
			history.Summary.OnTime++
		case report.UIStatusLate:
			history.Summary.Late++
		case report.UIStatusLeave:
			history.Summary.Leave++
		case report.UIStatusAbsent:
			history.Summary.Absent++
		default:
			history.Summary.Blank++
		}
	}

	if opts.Persist {
		if err := s.backfill(ctx, missing); err != nil {
			return report.History{}, err
		}
	}

	return history, nil
}

// GetMonthlyGrid implements report.ReportService.
func (s *ReportServiceImpl) GetMonthlyGrid(ctx context.Context, req report.MonthlyGridRequest) (report.MonthlyGrid, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyGrid{}, err
	}

	var (
		employees []employee.Employee
		err       error
	)
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.ListByIDs(ctx, req.EmployeeIDs)
		if err == nil && len(employees) == 0 {
			return report.MonthlyGrid{}, report.ErrNoEmployees
		}
	} else {
		employees, err = s.employeeRepo.List(ctx)
	}
	if err != nil {
		return report.MonthlyGrid{}, fmt.Errorf("failed to list employees: %w", err)
	}

	return s.BuildGrid(ctx, req.Year, req.MonthNum, employees, report.ReadOptions{Persist: req.Backfill})
}

// GetHistory implements report.ReportService.
func (s *ReportServiceImpl) GetHistory(ctx context.Context, req report.HistoryRequest) (report.History, error) {
	if err := req.Validate(); err != nil {
		return report.History{}, err
	}
	return s.BuildHistory(ctx, req.EmployeeID, req.Year, req.MonthNum, report.ReadOptions{Persist: req.Backfill})
}

type missingCell struct {
	employeeID string
	day        time.Time
}

// backfill materializes cells with no stored day status, up to and including today.
// Future days are skipped so nothing is written ahead of the facts.
func (s *ReportServiceImpl) backfill(ctx context.Context, cells []missingCell) error {
	if s.materializer == nil {
		return nil
	}
	today := calendar.Today(s.clock)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(backfillConcurrency)

	count := 0
	for _, c := range cells {
		if c.day.After(today) {
			continue
		}
		count++
		g.Go(func() error {
			return s.materializer.Recompute(gctx, c.employeeID, c.day, false)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to backfill day statuses: %w", err)
	}
	s.metrics.ObserveBackfill("read", count)
	if count > 0 {
		slog.Debug("Backfilled day statuses on read", "cells", count)
	}
	return nil
}

func tallyDay(c *report.DayCounts, status report.UIStatus) {
	switch status {
	case report.UIStatusOnTime:
		c.OnTime++
	case report.UIStatusLate:
		c.Late++
	case report.UIStatusLeave:
		c.Leave++
	case report.UIStatusAbsent:
		c.Absent++
	default:
		c.Blank++
	}
}

// percent returns part/total as a percentage rounded to two decimals.
func percent(part, total int) float64 {
	if total < 1 {
		total = 1
	}
	return math.Round(float64(part)*10000/float64(total)) / 100
}

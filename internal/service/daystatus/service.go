package daystatus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/metrics"
)

type DayStatusServiceImpl struct {
	dayStatusRepo  daystatus.DayStatusRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	employeeRepo   employee.EmployeeRepository
	holidays       calendar.HolidayPolicy
	clock          calendar.Clock
	metrics        *metrics.DayStatusMetrics
}

func NewDayStatusService(
	dayStatusRepo daystatus.DayStatusRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	holidays calendar.HolidayPolicy,
	clock calendar.Clock,
	m *metrics.DayStatusMetrics,
) daystatus.DayStatusService {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &DayStatusServiceImpl{
		dayStatusRepo:  dayStatusRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		holidays:       holidays,
		clock:          clock,
		metrics:        m,
	}
}

// loadFacts reads the leave and attendance facts for one cell.
func (s *DayStatusServiceImpl) loadFacts(ctx context.Context, employeeID string, day time.Time) (daystatus.Facts, error) {
	var facts daystatus.Facts

	l, err := s.leaveRepo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return facts, fmt.Errorf("failed to load leave: %w", err)
	}
	facts.Leave = l

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return facts, fmt.Errorf("failed to load attendance: %w", err)
	}
	facts.Attendance = att

	return facts, nil
}

func (s *DayStatusServiceImpl) resolve(ctx context.Context, employeeID string, day time.Time) (daystatus.Snapshot, *daystatus.Record, error) {
	stored, err := s.dayStatusRepo.Get(ctx, employeeID, day)
	if err != nil {
		return daystatus.Snapshot{}, nil, fmt.Errorf("failed to load day status: %w", err)
	}

	facts, err := s.loadFacts(ctx, employeeID, day)
	if err != nil {
		return daystatus.Snapshot{}, nil, err
	}
	facts.Stored = stored

	return daystatus.Derive(facts, day, calendar.Today(s.clock), s.holidays), stored, nil
}

// Resolve implements daystatus.DayStatusService.
func (s *DayStatusServiceImpl) Resolve(ctx context.Context, employeeID string, workDate time.Time) (daystatus.Snapshot, error) {
	snap, _, err := s.resolve(ctx, employeeID, calendar.Day(workDate))
	return snap, err
}

// Recompute implements daystatus.Materializer.
func (s *DayStatusServiceImpl) Recompute(ctx context.Context, employeeID string, workDate time.Time, force bool) error {
	day := calendar.Day(workDate)

	stored, err := s.dayStatusRepo.Get(ctx, employeeID, day)
	if err != nil {
		s.metrics.ObserveRecompute(metrics.RecomputeOutcomeError, force)
		return fmt.Errorf("failed to load day status: %w", err)
	}
	if stored != nil && stored.IsPinned() && !force {
		slog.Debug("Day status pinned, skipping recompute", "employee_id", employeeID, "date", calendar.FormatDay(day))
		s.metrics.ObserveRecompute(metrics.RecomputeOutcomeSkippedManual, force)
		return nil
	}

	facts, err := s.loadFacts(ctx, employeeID, day)
	if err != nil {
		s.metrics.ObserveRecompute(metrics.RecomputeOutcomeError, force)
		return err
	}
	// a forced recompute derives from facts alone, so the pin is not consulted
	snap := daystatus.Derive(facts, day, calendar.Today(s.clock), s.holidays)

	written, err := s.dayStatusRepo.Upsert(ctx, snap.ToRecord(employeeID, day, s.clock.Now().UTC()), force)
	if err != nil {
		s.metrics.ObserveRecompute(metrics.RecomputeOutcomeError, force)
		return fmt.Errorf("failed to upsert day status: %w", err)
	}
	if !written {
		// pinned between the read and the write
		slog.Debug("Day status pinned concurrently, upsert skipped", "employee_id", employeeID, "date", calendar.FormatDay(day))
		s.metrics.ObserveRecompute(metrics.RecomputeOutcomeSkippedManual, force)
		return nil
	}

	database.AfterCommit(ctx, func() {
		s.metrics.ObserveRecompute(metrics.RecomputeOutcomeWritten, force)
	})
	return nil
}

func (s *DayStatusServiceImpl) response(ctx context.Context, employeeID string, day time.Time) (daystatus.DayStatusResponse, error) {
	snap, stored, err := s.resolve(ctx, employeeID, day)
	if err != nil {
		return daystatus.DayStatusResponse{}, err
	}
	return daystatus.NewDayStatusResponse(employeeID, day, snap, stored), nil
}

// GetDayStatus implements daystatus.DayStatusService.
func (s *DayStatusServiceImpl) GetDayStatus(ctx context.Context, req daystatus.DayKeyRequest) (daystatus.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return daystatus.DayStatusResponse{}, err
	}
	return s.response(ctx, req.EmployeeID, req.ParsedDate)
}

// requireEmployee rejects writes for ids missing from the registry.
func (s *DayStatusServiceImpl) requireEmployee(ctx context.Context, employeeID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	return nil
}

// RecomputeDay implements daystatus.DayStatusService.
func (s *DayStatusServiceImpl) RecomputeDay(ctx context.Context, req daystatus.RecomputeRequest) (daystatus.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return daystatus.DayStatusResponse{}, err
	}
	if err := s.requireEmployee(ctx, req.EmployeeID); err != nil {
		return daystatus.DayStatusResponse{}, err
	}
	if err := s.Recompute(ctx, req.EmployeeID, req.ParsedDate, req.Force); err != nil {
		return daystatus.DayStatusResponse{}, err
	}
	return s.response(ctx, req.EmployeeID, req.ParsedDate)
}

// SetOverride implements daystatus.DayStatusService.
func (s *DayStatusServiceImpl) SetOverride(ctx context.Context, req daystatus.SetOverrideRequest) (daystatus.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return daystatus.DayStatusResponse{}, err
	}
	if err := s.requireEmployee(ctx, req.EmployeeID); err != nil {
		return daystatus.DayStatusResponse{}, err
	}

	record := req.Snapshot().ToRecord(req.EmployeeID, req.ParsedDate, s.clock.Now().UTC())
	if _, err := s.dayStatusRepo.Upsert(ctx, record, true); err != nil {
		return daystatus.DayStatusResponse{}, fmt.Errorf("failed to pin day status: %w", err)
	}
	s.metrics.ObserveOverride("set")
	slog.Debug("Day status pinned", "employee_id", req.EmployeeID, "date", req.Date, "status", req.Status)

	return s.response(ctx, req.EmployeeID, req.ParsedDate)
}

// ClearOverride implements daystatus.DayStatusService.
func (s *DayStatusServiceImpl) ClearOverride(ctx context.Context, req daystatus.DayKeyRequest) (daystatus.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return daystatus.DayStatusResponse{}, err
	}
	if err := s.requireEmployee(ctx, req.EmployeeID); err != nil {
		return daystatus.DayStatusResponse{}, err
	}

	removed, err := s.dayStatusRepo.DeleteManual(ctx, req.EmployeeID, req.ParsedDate)
	if err != nil {
		return daystatus.DayStatusResponse{}, fmt.Errorf("failed to clear override: %w", err)
	}
	if !removed {
		return daystatus.DayStatusResponse{}, daystatus.ErrOverrideNotPresent
	}
	s.metrics.ObserveOverride("clear")

	if err := s.Recompute(ctx, req.EmployeeID, req.ParsedDate, true); err != nil {
		return daystatus.DayStatusResponse{}, err
	}
	slog.Debug("Day status override cleared", "employee_id", req.EmployeeID, "date", req.Date)

	return s.response(ctx, req.EmployeeID, req.ParsedDate)
}

var _ daystatus.DayStatusService = (*DayStatusServiceImpl)(nil)

package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	txManager postgresql.TxManager
	attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	materializer daystatus.Materializer
}

func NewAttendanceService(
	txManager postgresql.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	materializer daystatus.Materializer,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txManager:            txManager,
		AttendanceRepository: attendanceRepo,
		employeeRepo:         employeeRepo,
		materializer:         materializer,
	}
}

// recompute refreshes the derived status of every distinct day touched by a mutation.
func (s *AttendanceServiceImpl) recompute(ctx context.Context, employeeID string, days ...time.Time) error {
	seen := make(map[time.Time]bool, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		if err := s.materializer.Recompute(ctx, employeeID, d, false); err != nil {
			return fmt.Errorf("failed to recompute day status: %w", err)
		}
	}
	return nil
}

// Create implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var created attendance.Attendance
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		created, err = s.AttendanceRepository.Create(txCtx, attendance.Attendance{
			EmployeeID: req.EmployeeID,
			WorkDate:   req.ParsedWorkDate,
			CheckIn:    req.ParsedCheckIn,
			CheckOut:   req.ParsedCheckOut,
			Arrival:    attendance.Arrival(req.Arrival),
		})
		if err != nil {
			return err
		}
		return s.recompute(txCtx, created.EmployeeID, created.WorkDate)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created.EmployeeName = &emp.Name
	slog.Info("Attendance recorded", "attendance_id", created.ID, "employee_id", created.EmployeeID, "work_date", req.WorkDate)
	return attendance.ToResponse(created), nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := s.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		updated, err = req.Apply(existing)
		if err != nil {
			return err
		}
		if err := s.AttendanceRepository.Update(txCtx, updated); err != nil {
			return err
		}

		// the old day loses its fact when work_date moves
		return s.recompute(txCtx, updated.EmployeeID, existing.WorkDate, updated.WorkDate)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := s.AttendanceRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.AttendanceRepository.Delete(txCtx, id); err != nil {
			return err
		}
		return s.recompute(txCtx, existing.EmployeeID, existing.WorkDate)
	})
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(att), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	list, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(list))
	for _, a := range list {
		responses = append(responses, attendance.ToResponse(a))
	}
	return responses, nil
}

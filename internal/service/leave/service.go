package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	txManager    postgresql.TxManager
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	materializer daystatus.Materializer
}

func NewLeaveService(
	txManager postgresql.TxManager,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	materializer daystatus.Materializer,
) leave.LeaveService {
	return &LeaveServiceImpl{
		txManager:    txManager,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		materializer: materializer,
	}
}

func (s *LeaveServiceImpl) recompute(ctx context.Context, employeeID string, days ...time.Time) error {
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

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	var created leave.Leave
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		created, err = s.leaveRepo.Create(txCtx, leave.Leave{
			EmployeeID: req.EmployeeID,
			LeaveDate:  req.ParsedLeaveDate,
			LeaveType:  req.LeaveType,
			Reason:     req.Reason,
		})
		if err != nil {
			return err
		}
		return s.recompute(txCtx, created.EmployeeID, created.LeaveDate)
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	created.EmployeeName = &emp.Name
	slog.Info("Leave recorded", "leave_id", created.ID, "employee_id", created.EmployeeID, "leave_date", req.LeaveDate)
	return leave.ToResponse(created), nil
}

// Update implements leave.LeaveService.
func (s *LeaveServiceImpl) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	var updated leave.Leave
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := s.leaveRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		updated = req.Apply(existing)
		if err := s.leaveRepo.Update(txCtx, updated); err != nil {
			return err
		}
		return s.recompute(txCtx, updated.EmployeeID, existing.LeaveDate, updated.LeaveDate)
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.ToResponse(updated), nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := s.leaveRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.leaveRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.recompute(txCtx, existing.EmployeeID, existing.LeaveDate)
	})
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToResponse(l), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, req leave.ListLeaveRequest) ([]leave.LeaveResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	leaves, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.ToResponse(l))
	}
	return responses, nil
}

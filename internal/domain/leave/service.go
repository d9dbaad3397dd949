package leave

import "context"

// LeaveService mutates leave facts and keeps derived day statuses in step.
type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	Update(ctx context.Context, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (LeaveResponse, error)
	List(ctx context.Context, req ListLeaveRequest) ([]LeaveResponse, error)
}

package attendance

import (
	"context"
)

// AttendanceService mutates attendance facts and keeps derived day statuses in step.
type AttendanceService interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter ListAttendanceRequest) ([]AttendanceResponse, error)
}

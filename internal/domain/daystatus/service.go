package daystatus

import (
	"context"
	"time"
)

// Materializer keeps the day status store in step with the raw facts.
// Fact mutation services call it for every affected (employee, day).
type Materializer interface {
	Recompute(ctx context.Context, employeeID string, workDate time.Time, force bool) error
}

// DayStatusService exposes resolution, materialization and manual overrides.
type DayStatusService interface {
	Materializer

	// Resolve computes the status the day should have, honouring a manual pin. Never writes.
	Resolve(ctx context.Context, employeeID string, workDate time.Time) (Snapshot, error)

	GetDayStatus(ctx context.Context, req DayKeyRequest) (DayStatusResponse, error)
	RecomputeDay(ctx context.Context, req RecomputeRequest) (DayStatusResponse, error)
	SetOverride(ctx context.Context, req SetOverrideRequest) (DayStatusResponse, error)
	ClearOverride(ctx context.Context, req DayKeyRequest) (DayStatusResponse, error)
}

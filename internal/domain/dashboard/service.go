package dashboard

import (
	"context"
	"time"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// BuildRange rolls raw facts up per day in [start, endExclusive), independent of stored day statuses
	BuildRange(ctx context.Context, start, endExclusive time.Time, countAbsentWhenNoData bool) ([]DayStats, error)

	// GetRange validates the request and wraps BuildRange with totals
	GetRange(ctx context.Context, req RangeRequest) (*RangeResponse, error)
}

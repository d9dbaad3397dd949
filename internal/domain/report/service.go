package report

import (
	"context"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
)

type ReportService interface {
	// BuildGrid builds the per-day, per-employee grid for one month
	BuildGrid(ctx context.Context, year, month int, employees []employee.Employee, opts ReadOptions) (MonthlyGrid, error)

	// BuildHistory builds one employee's daily statuses for one month
	BuildHistory(ctx context.Context, employeeID string, year, month int, opts ReadOptions) (History, error)

	GetMonthlyGrid(ctx context.Context, req MonthlyGridRequest) (MonthlyGrid, error)
	GetHistory(ctx context.Context, req HistoryRequest) (History, error)
}

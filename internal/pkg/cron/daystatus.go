package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/metrics"
)

const BackfillJobName = "backfill_day_statuses"

type DayStatusJobs struct {
	employeeRepo employee.EmployeeRepository
	materializer daystatus.Materializer
	clock        calendar.Clock
	metrics      *metrics.DayStatusMetrics
	interval     time.Duration
}

func NewDayStatusJobs(
	employeeRepo employee.EmployeeRepository,
	materializer daystatus.Materializer,
	clock calendar.Clock,
	m *metrics.DayStatusMetrics,
	interval time.Duration,
) *DayStatusJobs {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &DayStatusJobs{
		employeeRepo: employeeRepo,
		materializer: materializer,
		clock:        clock,
		metrics:      m,
		interval:     interval,
	}
}

func (j *DayStatusJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(BackfillJobName, j.interval, j.BackfillYesterday)
}

// BackfillYesterday recomputes yesterday for every employee so days nobody
// touched still settle into ABSENT or OFF_DUTY. Manual pins are kept.
func (j *DayStatusJobs) BackfillYesterday(ctx context.Context) error {
	yesterday := calendar.Today(j.clock).AddDate(0, 0, -1)
	slog.Info("Cron: Starting day status backfill", "date", calendar.FormatDay(yesterday))

	employees, err := j.employeeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	var errs []error
	done := 0
	for _, e := range employees {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := j.materializer.Recompute(ctx, e.ID, yesterday, false); err != nil {
			slog.Error("Cron: Failed to backfill day status", "employee_id", e.ID, "error", err)
			errs = append(errs, fmt.Errorf("employee %s: %w", e.ID, err))
			continue
		}
		done++
	}

	j.metrics.ObserveBackfill("cron", done)
	slog.Info("Cron: Day status backfill finished", "date", calendar.FormatDay(yesterday), "recomputed", done, "failed", len(employees)-done)
	return errors.Join(errs...)
}

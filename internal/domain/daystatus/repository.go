package daystatus

import (
	"context"
	"time"
)

// DayStatusRepository persists materialized day statuses.
type DayStatusRepository interface {
	// Get returns the stored record, or nil when none exists
	Get(ctx context.Context, employeeID string, workDate time.Time) (*Record, error)

	// Upsert writes the record in a single statement. Unless force is set, an
	// existing MANUAL record is left untouched and written reports false.
	Upsert(ctx context.Context, record Record, force bool) (written bool, err error)

	// DeleteManual removes the record only if it is MANUAL; reports whether a row was removed
	DeleteManual(ctx context.Context, employeeID string, workDate time.Time) (bool, error)

	// List returns records in [start, end); nil employeeIDs means all employees
	List(ctx context.Context, employeeIDs []string, start, end time.Time) ([]Record, error)
}

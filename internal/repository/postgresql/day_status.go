package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type dayStatusRepository struct {
	db *database.DB
}

func NewDayStatusRepository(db *database.DB) daystatus.DayStatusRepository {
	return &dayStatusRepository{db: db}
}

type dayStatusRow struct {
	employeeID string
	workDate   time.Time
	status     string
	source     string
	arrival    *string
	updatedAt  time.Time
}

func (r dayStatusRow) toRecord() daystatus.Record {
	rec := daystatus.Record{
		EmployeeID: r.employeeID,
		WorkDate:   time.Date(r.workDate.Year(), r.workDate.Month(), r.workDate.Day(), 0, 0, 0, 0, time.UTC),
		Status:     daystatus.Status(r.status),
		Source:     daystatus.Source(r.source),
		UpdatedAt:  r.updatedAt,
	}
	if r.arrival != nil {
		a := attendance.Arrival(*r.arrival)
		rec.ArrivalDetail = &a
	}
	return rec
}

func arrivalArg(a *attendance.Arrival) *string {
	if a == nil {
		return nil
	}
	s := string(*a)
	return &s
}

// Get implements daystatus.DayStatusRepository.
func (d *dayStatusRepository) Get(ctx context.Context, employeeID string, workDate time.Time) (*daystatus.Record, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT employee_id, work_date, status, source, arrival_detail, updated_at
		FROM day_statuses
		WHERE employee_id = $1 AND work_date = $2
	`

	var row dayStatusRow
	err := q.QueryRow(ctx, query, employeeID, workDate).Scan(
		&row.employeeID, &row.workDate, &row.status, &row.source, &row.arrival, &row.updatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get day status: %w", err)
	}

	rec := row.toRecord()
	return &rec, nil
}

// Upsert implements daystatus.DayStatusRepository.
// The MANUAL guard lives in the ON CONFLICT clause so the pin check and the
// write happen in one statement.
func (d *dayStatusRepository) Upsert(ctx context.Context, record daystatus.Record, force bool) (bool, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO day_statuses (employee_id, work_date, status, source, arrival_detail, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, work_date) DO UPDATE
		SET status = EXCLUDED.status,
			source = EXCLUDED.source,
			arrival_detail = EXCLUDED.arrival_detail,
			updated_at = EXCLUDED.updated_at
		WHERE day_statuses.source <> 'MANUAL' OR $7::boolean
	`

	tag, err := q.Exec(ctx, query,
		record.EmployeeID,
		record.WorkDate,
		string(record.Status),
		string(record.Source),
		arrivalArg(record.ArrivalDetail),
		record.UpdatedAt,
		force,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return false, employee.ErrEmployeeNotFound
		}
		return false, fmt.Errorf("failed to upsert day status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteManual implements daystatus.DayStatusRepository.
func (d *dayStatusRepository) DeleteManual(ctx context.Context, employeeID string, workDate time.Time) (bool, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		DELETE FROM day_statuses
		WHERE employee_id = $1 AND work_date = $2 AND source = 'MANUAL'
	`

	tag, err := q.Exec(ctx, query, employeeID, workDate)
	if err != nil {
		return false, fmt.Errorf("failed to delete manual day status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List implements daystatus.DayStatusRepository.
func (d *dayStatusRepository) List(ctx context.Context, employeeIDs []string, start, end time.Time) ([]daystatus.Record, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT employee_id, work_date, status, source, arrival_detail, updated_at
		FROM day_statuses
		WHERE work_date >= $1 AND work_date < $2
		  AND ($3::text[] IS NULL OR employee_id = ANY($3))
		ORDER BY work_date ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, start, end, nullableIDs(employeeIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list day statuses: %w", err)
	}
	defer rows.Close()

	var records []daystatus.Record
	for rows.Next() {
		var row dayStatusRow
		if err := rows.Scan(&row.employeeID, &row.workDate, &row.status, &row.source, &row.arrival, &row.updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan day status: %w", err)
		}
		records = append(records, row.toRecord())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day statuses: %w", err)
	}

	return records, nil
}

// nullableIDs turns an empty filter into SQL NULL so "all employees" needs no second query.
func nullableIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return ids
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.work_date, a.check_in, a.check_out, a.arrival,
	a.created_at, a.updated_at, e.name AS employee_name
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var arrival string
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.WorkDate, &att.CheckIn, &att.CheckOut, &arrival,
		&att.CreatedAt, &att.UpdatedAt, &att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Arrival = attendance.Arrival(arrival)
	att.WorkDate = time.Date(att.WorkDate.Year(), att.WorkDate.Month(), att.WorkDate.Day(), 0, 0, 0, 0, time.UTC)
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if newAttendance.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		newAttendance.ID = id.String()
	}

	query := `
		INSERT INTO attendances (id, employee_id, work_date, check_in, check_out, arrival)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		newAttendance.WorkDate,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		string(newAttendance.Arrival),
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	// ids are uuid columns; anything else cannot exist
	if uuid.Validate(id) != nil {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.work_date = $2
		ORDER BY a.check_in ASC, a.id ASC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET work_date = $2, check_in = $3, check_out = $4, arrival = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, att.ID, att.WorkDate, att.CheckIn, att.CheckOut, string(att.Arrival))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return attendance.ErrAttendanceExists
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	where, args := rangeWhere("a.work_date", "a.employee_id", filter.EmployeeIDs, filter.StartDate, filter.EndDate)
	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + where + `
		ORDER BY a.work_date ASC, a.employee_id ASC, a.check_in ASC, a.id ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return result, nil
}

// rangeWhere builds the shared employee/date filter used by fact listings.
func rangeWhere(dateCol, employeeCol string, employeeIDs []string, start, end *time.Time) (string, []interface{}) {
	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if len(employeeIDs) > 0 {
		where += fmt.Sprintf(" AND %s = ANY($%d)", employeeCol, argIdx)
		args = append(args, employeeIDs)
		argIdx++
	}
	if start != nil {
		where += fmt.Sprintf(" AND %s >= $%d", dateCol, argIdx)
		args = append(args, *start)
		argIdx++
	}
	if end != nil {
		where += fmt.Sprintf(" AND %s < $%d", dateCol, argIdx)
		args = append(args, *end)
	}
	return where, args
}

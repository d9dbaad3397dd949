package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	l.id, l.employee_id, l.leave_date, l.leave_type, l.reason,
	l.created_at, l.updated_at, e.name AS employee_name
`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveDate, &l.LeaveType, &l.Reason,
		&l.CreatedAt, &l.UpdatedAt, &l.EmployeeName,
	)
	if err != nil {
		return leave.Leave{}, err
	}
	l.LeaveDate = time.Date(l.LeaveDate.Year(), l.LeaveDate.Month(), l.LeaveDate.Day(), 0, 0, 0, 0, time.UTC)
	return l, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, newLeave leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	if newLeave.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.Leave{}, fmt.Errorf("failed to generate leave id: %w", err)
		}
		newLeave.ID = id.String()
	}

	query := `
		INSERT INTO leaves (id, employee_id, leave_date, leave_type, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newLeave.ID,
		newLeave.EmployeeID,
		newLeave.LeaveDate,
		newLeave.LeaveType,
		newLeave.Reason,
	).Scan(&newLeave.CreatedAt, &newLeave.UpdatedAt)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return newLeave, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	// ids are uuid columns; anything else cannot exist
	if uuid.Validate(id) != nil {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + `
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	l, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave by ID: %w", err)
	}
	return l, nil
}

// GetByEmployeeAndDate implements leave.LeaveRepository.
func (r *leaveRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + `
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.employee_id = $1 AND l.leave_date = $2
		ORDER BY l.created_at ASC, l.id ASC
		LIMIT 1
	`

	l, err := scanLeave(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave by employee and date: %w", err)
	}
	return &l, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepository) Update(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET leave_date = $2, leave_type = $3, reason = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, l.ID, l.LeaveDate, l.LeaveType, l.Reason)
	if err != nil {
		return fmt.Errorf("failed to update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return leave.ErrLeaveNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	where, args := rangeWhere("l.leave_date", "l.employee_id", filter.EmployeeIDs, filter.StartDate, filter.EndDate)
	query := `SELECT ` + leaveColumns + `
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE ` + where + `
		ORDER BY l.leave_date ASC, l.employee_id ASC, l.created_at ASC, l.id ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var result []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaves: %w", err)
	}

	return result, nil
}

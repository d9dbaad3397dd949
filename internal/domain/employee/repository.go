package employee

import "context"

// EmployeeRepository is the read side of the employee registry.
// Listings are ordered by id ascending.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListByIDs(ctx context.Context, ids []string) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
}

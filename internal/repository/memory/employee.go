package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee)}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

// GetByID implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *EmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return r.ListByIDs(ctx, nil)
}

// ListByIDs implements employee.EmployeeRepository. nil ids lists everyone.
func (r *EmployeeRepository) ListByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := idSet(ids)
	if ids != nil && want == nil {
		return []employee.Employee{}, nil
	}
	out := []employee.Employee{}
	for _, e := range r.employees {
		if want != nil && !want[e.ID] {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Count implements employee.EmployeeRepository.
func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.employees)), nil
}

var _ employee.EmployeeRepository = (*EmployeeRepository)(nil)

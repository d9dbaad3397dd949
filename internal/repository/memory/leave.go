package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/google/uuid"
)

type LeaveRepository struct {
	mu     sync.Mutex
	leaves map[string]leave.Leave
}

func NewLeaveRepository(seed ...leave.Leave) *LeaveRepository {
	r := &LeaveRepository{leaves: make(map[string]leave.Leave)}
	for _, l := range seed {
		_, _ = r.Create(context.Background(), l)
	}
	return r
}

// Create implements leave.LeaveRepository.
func (r *LeaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.Must(uuid.NewV7()).String()
	}
	l.LeaveDate = calendar.Day(l.LeaveDate)
	r.leaves[l.ID] = l
	return l, nil
}

// GetByID implements leave.LeaveRepository.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

// GetByEmployeeAndDate implements leave.LeaveRepository.
func (r *LeaveRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*leave.Leave, error) {
	day := calendar.Day(date)
	list, _ := r.List(ctx, leave.LeaveFilter{EmployeeIDs: []string{employeeID}})
	for _, l := range list {
		if l.LeaveDate.Equal(day) {
			return &l, nil
		}
	}
	return nil, nil
}

// Update implements leave.LeaveRepository.
func (r *LeaveRepository) Update(ctx context.Context, l leave.Leave) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leaves[l.ID]; !ok {
		return leave.ErrLeaveNotFound
	}
	l.LeaveDate = calendar.Day(l.LeaveDate)
	r.leaves[l.ID] = l
	return nil
}

// Delete implements leave.LeaveRepository.
func (r *LeaveRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leaves[id]; !ok {
		return leave.ErrLeaveNotFound
	}
	delete(r.leaves, id)
	return nil
}

// List implements leave.LeaveRepository.
func (r *LeaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := idSet(filter.EmployeeIDs)
	var out []leave.Leave
	for _, l := range r.leaves {
		if want != nil && !want[l.EmployeeID] {
			continue
		}
		if !inRange(l.LeaveDate, filter.StartDate, filter.EndDate) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		x, y := out[i], out[j]
		switch {
		case !x.LeaveDate.Equal(y.LeaveDate):
			return x.LeaveDate.Before(y.LeaveDate)
		case x.EmployeeID != y.EmployeeID:
			return x.EmployeeID < y.EmployeeID
		case !x.CreatedAt.Equal(y.CreatedAt):
			return x.CreatedAt.Before(y.CreatedAt)
		}
		return x.ID < y.ID
	})
	return out, nil
}

var _ leave.LeaveRepository = (*LeaveRepository)(nil)

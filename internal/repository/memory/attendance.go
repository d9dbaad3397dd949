package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/google/uuid"
)

type AttendanceRepository struct {
	mu    sync.Mutex
	facts map[string]attendance.Attendance
}

func NewAttendanceRepository(seed ...attendance.Attendance) *AttendanceRepository {
	r := &AttendanceRepository{facts: make(map[string]attendance.Attendance)}
	for _, a := range seed {
		_, _ = r.Create(context.Background(), a)
	}
	return r
}

// Create implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.WorkDate = calendar.Day(a.WorkDate)
	for _, existing := range r.facts {
		if existing.EmployeeID == a.EmployeeID && existing.WorkDate.Equal(a.WorkDate) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
	}
	if a.ID == "" {
		a.ID = uuid.Must(uuid.NewV7()).String()
	}
	r.facts[a.ID] = a
	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.facts[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	day := calendar.Day(date)
	list, _ := r.List(ctx, attendance.AttendanceFilter{EmployeeIDs: []string{employeeID}})
	for _, a := range list {
		if a.WorkDate.Equal(day) {
			return &a, nil
		}
	}
	return nil, nil
}

// Update implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.facts[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.WorkDate = calendar.Day(a.WorkDate)
	for id, existing := range r.facts {
		if id != a.ID && existing.EmployeeID == a.EmployeeID && existing.WorkDate.Equal(a.WorkDate) {
			return attendance.ErrAttendanceExists
		}
	}
	r.facts[a.ID] = a
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.facts[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.facts, id)
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *AttendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := idSet(filter.EmployeeIDs)
	var out []attendance.Attendance
	for _, a := range r.facts {
		if want != nil && !want[a.EmployeeID] {
			continue
		}
		if !inRange(a.WorkDate, filter.StartDate, filter.EndDate) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		x, y := out[i], out[j]
		switch {
		case !x.WorkDate.Equal(y.WorkDate):
			return x.WorkDate.Before(y.WorkDate)
		case x.EmployeeID != y.EmployeeID:
			return x.EmployeeID < y.EmployeeID
		case !x.CheckIn.Equal(y.CheckIn):
			return x.CheckIn.Before(y.CheckIn)
		}
		return x.ID < y.ID
	})
	return out, nil
}

var _ attendance.AttendanceRepository = (*AttendanceRepository)(nil)

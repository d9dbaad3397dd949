// Package memory holds map-backed repositories with the same contracts as the
// PostgreSQL ones. They back the engine tests and local experiments.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
)

type DayStatusRepository struct {
	mu      sync.Mutex
	records map[string]daystatus.Record
	writes  int
}

func NewDayStatusRepository() *DayStatusRepository {
	return &DayStatusRepository{records: make(map[string]daystatus.Record)}
}

// Get implements daystatus.DayStatusRepository.
func (r *DayStatusRepository) Get(ctx context.Context, employeeID string, workDate time.Time) (*daystatus.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[calendar.Key(employeeID, workDate)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Upsert implements daystatus.DayStatusRepository.
func (r *DayStatusRepository) Upsert(ctx context.Context, record daystatus.Record, force bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.WorkDate = calendar.Day(record.WorkDate)
	key := calendar.Key(record.EmployeeID, record.WorkDate)
	if existing, ok := r.records[key]; ok && existing.IsPinned() && !force {
		return false, nil
	}
	r.records[key] = record
	r.writes++
	return true, nil
}

// DeleteManual implements daystatus.DayStatusRepository.
func (r *DayStatusRepository) DeleteManual(ctx context.Context, employeeID string, workDate time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := calendar.Key(employeeID, workDate)
	if existing, ok := r.records[key]; !ok || !existing.IsPinned() {
		return false, nil
	}
	delete(r.records, key)
	return true, nil
}

// List implements daystatus.DayStatusRepository.
func (r *DayStatusRepository) List(ctx context.Context, employeeIDs []string, start, end time.Time) ([]daystatus.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := idSet(employeeIDs)
	var out []daystatus.Record
	for _, rec := range r.records {
		if want != nil && !want[rec.EmployeeID] {
			continue
		}
		if rec.WorkDate.Before(start) || !rec.WorkDate.Before(end) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WorkDate.Equal(out[j].WorkDate) {
			return out[i].WorkDate.Before(out[j].WorkDate)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

// Writes counts successful upserts.
func (r *DayStatusRepository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Len is the number of stored records.
func (r *DayStatusRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func idSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func inRange(day time.Time, start, end *time.Time) bool {
	if start != nil && day.Before(*start) {
		return false
	}
	if end != nil && !day.Before(*end) {
		return false
	}
	return true
}

var _ daystatus.DayStatusRepository = (*DayStatusRepository)(nil)

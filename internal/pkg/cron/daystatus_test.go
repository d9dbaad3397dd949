package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	employeeID string
	day        time.Time
	force      bool
}

type recordingMaterializer struct {
	calls []recordedCall
	fail  map[string]error
}

func (m *recordingMaterializer) Recompute(ctx context.Context, employeeID string, workDate time.Time, force bool) error {
	m.calls = append(m.calls, recordedCall{employeeID: employeeID, day: workDate, force: force})
	return m.fail[employeeID]
}

func TestBackfillYesterday(t *testing.T) {
	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "EMP002", Name: "Budi"},
		employee.Employee{ID: "EMP001", Name: "Ana"},
	)
	mat := &recordingMaterializer{}
	clock := calendar.NewFakeClock(time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC))

	jobs := NewDayStatusJobs(employees, mat, clock, nil, time.Hour)
	require.NoError(t, jobs.BackfillYesterday(context.Background()))

	yesterday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []recordedCall{
		{employeeID: "EMP001", day: yesterday},
		{employeeID: "EMP002", day: yesterday},
	}, mat.calls)
}

func TestBackfillYesterday_ContinuesPastFailures(t *testing.T) {
	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "EMP001", Name: "Ana"},
		employee.Employee{ID: "EMP002", Name: "Budi"},
	)
	boom := errors.New("deadlock detected")
	mat := &recordingMaterializer{fail: map[string]error{"EMP001": boom}}

	jobs := NewDayStatusJobs(employees, mat, calendar.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)), nil, time.Hour)
	err := jobs.BackfillYesterday(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Len(t, mat.calls, 2)
}

func TestScheduler_RegisterAndRunNow(t *testing.T) {
	s := NewScheduler(time.Second)
	mat := &recordingMaterializer{}
	employees := memory.NewEmployeeRepository(employee.Employee{ID: "EMP001", Name: "Ana"})

	NewDayStatusJobs(employees, mat, calendar.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)), nil, time.Hour).RegisterJobs(s)
	assert.Equal(t, []string{BackfillJobName}, s.Jobs())

	require.NoError(t, s.RunNow(context.Background(), BackfillJobName))
	assert.Len(t, mat.calls, 1)

	assert.Error(t, s.RunNow(context.Background(), "missing"))
}

func TestScheduler_DisabledJob(t *testing.T) {
	s := NewScheduler(0)
	NewDayStatusJobs(memory.NewEmployeeRepository(), &recordingMaterializer{}, nil, nil, 0).RegisterJobs(s)
	assert.Empty(t, s.Jobs())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(0)
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

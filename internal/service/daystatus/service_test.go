package daystatus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/repository/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Monday 2025-03-10, noon UTC. 2025-03-09 is a Sunday.
var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	d, err := calendar.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	svc         daystatus.DayStatusService
	store       *memory.DayStatusRepository
	attendances *memory.AttendanceRepository
	leaves      *memory.LeaveRepository
	employees   *memory.EmployeeRepository
	metrics     *metrics.DayStatusMetrics
}

func newFixture() *fixture {
	f := &fixture{
		store:       memory.NewDayStatusRepository(),
		attendances: memory.NewAttendanceRepository(),
		leaves:      memory.NewLeaveRepository(),
		employees:   memory.NewEmployeeRepository(employee.Employee{ID: "EMP001", Name: "Ana"}),
		metrics:     metrics.NewDayStatusMetrics(prometheus.NewRegistry()),
	}
	f.svc = NewDayStatusService(f.store, f.attendances, f.leaves, f.employees, calendar.DefaultHolidayPolicy(), calendar.NewFakeClock(now), f.metrics)
	return f
}

func (f *fixture) checkIn(t *testing.T, employeeID, date string, arrival attendance.Arrival, checkedOut bool) {
	t.Helper()
	in := day(date).Add(8 * time.Hour)
	a := attendance.Attendance{EmployeeID: employeeID, WorkDate: day(date), CheckIn: in, Arrival: arrival}
	if checkedOut {
		out := in.Add(9 * time.Hour)
		a.CheckOut = &out
	}
	_, err := f.attendances.Create(context.Background(), a)
	require.NoError(t, err)
}

func (f *fixture) takeLeave(t *testing.T, employeeID, date string) {
	t.Helper()
	_, err := f.leaves.Create(context.Background(), leave.Leave{EmployeeID: employeeID, LeaveDate: day(date), LeaveType: "annual"})
	require.NoError(t, err)
}

func (f *fixture) stored(t *testing.T, employeeID, date string) daystatus.Record {
	t.Helper()
	rec, err := f.store.Get(context.Background(), employeeID, day(date))
	require.NoError(t, err)
	require.NotNil(t, rec)
	return *rec
}

func TestResolve_LeaveBeatsAttendance(t *testing.T) {
	f := newFixture()
	f.checkIn(t, "EMP001", "2025-03-05", attendance.ArrivalLate, false)
	f.takeLeave(t, "EMP001", "2025-03-05")

	snap, err := f.svc.Resolve(context.Background(), "EMP001", day("2025-03-05"))
	require.NoError(t, err)

	assert.Equal(t, daystatus.StatusOnLeave, snap.Status)
	assert.Equal(t, daystatus.SourceLeave, snap.Source)
	assert.Nil(t, snap.ArrivalDetail)
	assert.Equal(t, 0, f.store.Len(), "resolve must not write")
}

func TestResolve_Attendance(t *testing.T) {
	f := newFixture()
	f.checkIn(t, "EMP001", "2025-03-05", attendance.ArrivalOnTime, false)
	f.checkIn(t, "EMP002", "2025-03-05", attendance.ArrivalLate, true)

	snap, err := f.svc.Resolve(context.Background(), "EMP001", day("2025-03-05"))
	require.NoError(t, err)
	assert.Equal(t, daystatus.StatusWorking, snap.Status)
	assert.Equal(t, daystatus.SourceAttendance, snap.Source)
	require.NotNil(t, snap.ArrivalDetail)
	assert.Equal(t, attendance.ArrivalOnTime, *snap.ArrivalDetail)

	snap, err = f.svc.Resolve(context.Background(), "EMP002", day("2025-03-05"))
	require.NoError(t, err)
	assert.Equal(t, daystatus.StatusOffDuty, snap.Status)
	require.NotNil(t, snap.ArrivalDetail)
	assert.Equal(t, attendance.ArrivalLate, *snap.ArrivalDetail)
}

func TestResolve_SystemFallback(t *testing.T) {
	tests := []struct {
		name string
		date string
		want daystatus.Status
	}{
		{"past weekday", "2025-03-05", daystatus.StatusAbsent},
		{"past holiday", "2025-03-09", daystatus.StatusOffDuty},
		{"today", "2025-03-10", daystatus.StatusNotCheckedIn},
		{"future weekday", "2025-03-12", daystatus.StatusNotCheckedIn},
		{"future holiday", "2025-03-16", daystatus.StatusOffDuty},
	}

	f := newFixture()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := f.svc.Resolve(context.Background(), "EMP003", day(tt.date))
			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.Status)
			assert.Equal(t, daystatus.SourceSystem, snap.Source)
			assert.Nil(t, snap.ArrivalDetail)
		})
	}
}

func TestRecompute_ManualPinSurvives(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SetOverride(ctx, daystatus.SetOverrideRequest{
		DayKeyRequest: daystatus.DayKeyRequest{EmployeeID: "EMP001", Date: "2025-03-05"},
		Status:        "absent",
	})
	require.NoError(t, err)

	f.checkIn(t, "EMP001", "2025-03-05", attendance.ArrivalOnTime, false)
	require.NoError(t, f.svc.Recompute(ctx, "EMP001", day("2025-03-05"), false))

	rec := f.stored(t, "EMP001", "2025-03-05")
	assert.Equal(t, daystatus.StatusAbsent, rec.Status)
	assert.Equal(t, daystatus.SourceManual, rec.Source)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RecomputeCount(metrics.RecomputeOutcomeSkippedManual, false)))

	// resolve honours the pin as well
	snap, err := f.svc.Resolve(ctx, "EMP001", day("2025-03-05"))
	require.NoError(t, err)
	assert.Equal(t, daystatus.StatusAbsent, snap.Status)
	assert.Equal(t, daystatus.SourceManual, snap.Source)
}

func TestRecompute_ForceOverwritesPin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SetOverride(ctx, daystatus.SetOverrideRequest{
		DayKeyRequest: daystatus.DayKeyRequest{EmployeeID: "EMP001", Date: "2025-03-05"},
		Status:        "ABSENT",
	})
	require.NoError(t, err)
	f.checkIn(t, "EMP001", "2025-03-05", attendance.ArrivalOnTime, true)

	require.NoError(t, f.svc.Recompute(ctx, "EMP001", day("2025-03-05"), true))

	rec := f.stored(t, "EMP001", "2025-03-05")
	assert.Equal(t, daystatus.StatusOffDuty, rec.Status)
	assert.Equal(t, daystatus.SourceAttendance, rec.Source)
}

func TestClearOverride_ReDerivesFromFacts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	key := daystatus.DayKeyRequest{EmployeeID: "EMP001", Date: "2025-03-05"}

	_, err := f.svc.SetOverride(ctx, daystatus.SetOverrideRequest{DayKeyRequest: key, Status: "ABSENT"})
	require.NoError(t, err)
	f.checkIn(t, "EMP001", "2025-03-05", attendance.ArrivalOnTime, false)

	resp, err := f.svc.ClearOverride(ctx, key)
	require.NoError(t, err)

	assert.False(t, resp.Pinned)
	assert.Equal(t, daystatus.StatusWorking, resp.Resolved.Status)
	require.NotNil(t, resp.Stored)
	assert.Equal(t, daystatus.StatusWorking, resp.Stored.Status)
	assert.Equal(t, daystatus.SourceAttendance, resp.Stored.Source)
	require.NotNil(t, resp.Stored.ArrivalDetail)
	assert.Equal(t, attendance.ArrivalOnTime, *resp.Stored.ArrivalDetail)
}

func TestClearOverride_NoPin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.Recompute(ctx, "EMP001", day("2025-03-05"), false))

	_, err := f.svc.ClearOverride(ctx, daystatus.DayKeyRequest{EmployeeID: "EMP001", Date: "2025-03-05"})
	assert.ErrorIs(t, err, daystatus.ErrOverrideNotPresent)

	rec := f.stored(t, "EMP001", "2025-03-05")
	assert.Equal(t, daystatus.StatusAbsent, rec.Status)
}

func TestDayStatusWrites_UnknownEmployee(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	key := daystatus.DayKeyRequest{EmployeeID: "GHOST", Date: "2025-03-05"}

	_, err := f.svc.RecomputeDay(ctx, daystatus.RecomputeRequest{DayKeyRequest: key})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.svc.SetOverride(ctx, daystatus.SetOverrideRequest{DayKeyRequest: key, Status: "ABSENT"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.svc.ClearOverride(ctx, key)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.RecomputeCount(metrics.RecomputeOutcomeWritten, false)))
}

func TestRecompute_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.checkIn(t, "EMP001", "2025-03-05", attendance.ArrivalLate, false)

	require.NoError(t, f.svc.Recompute(ctx, "EMP001", day("2025-03-05"), false))
	first := f.stored(t, "EMP001", "2025-03-05")
	require.NoError(t, f.svc.Recompute(ctx, "EMP001", day("2025-03-05"), false))
	second := f.stored(t, "EMP001", "2025-03-05")

	assert.True(t, first.Snapshot().Equal(second.Snapshot()))
	assert.Equal(t, 1, f.store.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.RecomputeCount(metrics.RecomputeOutcomeWritten, false)))
}

func TestRecompute_WrittenCountedOnCommit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	rollback := errors.New("attendance already exists")

	err := memory.TxManager{}.WithinTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, f.svc.Recompute(txCtx, "EMP001", day("2025-03-05"), false))
		return rollback
	})
	require.ErrorIs(t, err, rollback)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.RecomputeCount(metrics.RecomputeOutcomeWritten, false)))

	err = memory.TxManager{}.WithinTx(ctx, func(txCtx context.Context) error {
		return f.svc.Recompute(txCtx, "EMP001", day("2025-03-05"), false)
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RecomputeCount(metrics.RecomputeOutcomeWritten, false)))
}

func TestRecompute_NormalizesToUTCDay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	jakarta := time.FixedZone("WIB", 7*3600)

	require.NoError(t, f.svc.Recompute(ctx, "EMP001", time.Date(2025, 3, 5, 23, 30, 0, 0, jakarta), false))

	rec := f.stored(t, "EMP001", "2025-03-05")
	assert.Equal(t, day("2025-03-05"), rec.WorkDate)
}

func TestSetOverride_Validation(t *testing.T) {
	f := newFixture()
	late := "LATE"

	_, err := f.svc.SetOverride(context.Background(), daystatus.SetOverrideRequest{
		DayKeyRequest: daystatus.DayKeyRequest{EmployeeID: "EMP001", Date: "2025-03-05"},
		Status:        "ON_LEAVE",
		ArrivalDetail: &late,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "arrival_detail")
	assert.Equal(t, 0, f.store.Len())
}

func TestGetDayStatus_InvalidDate(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetDayStatus(context.Background(), daystatus.DayKeyRequest{EmployeeID: "EMP001", Date: "2025-02-30"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
}

type mockDayStatusRepo struct {
	mock.Mock
}

func (m *mockDayStatusRepo) Get(ctx context.Context, employeeID string, workDate time.Time) (*daystatus.Record, error) {
	args := m.Called(ctx, employeeID, workDate)
	rec, _ := args.Get(0).(*daystatus.Record)
	return rec, args.Error(1)
}

func (m *mockDayStatusRepo) Upsert(ctx context.Context, record daystatus.Record, force bool) (bool, error) {
	args := m.Called(ctx, record, force)
	return args.Bool(0), args.Error(1)
}

func (m *mockDayStatusRepo) DeleteManual(ctx context.Context, employeeID string, workDate time.Time) (bool, error) {
	args := m.Called(ctx, employeeID, workDate)
	return args.Bool(0), args.Error(1)
}

func (m *mockDayStatusRepo) List(ctx context.Context, employeeIDs []string, start, end time.Time) ([]daystatus.Record, error) {
	args := m.Called(ctx, employeeIDs, start, end)
	recs, _ := args.Get(0).([]daystatus.Record)
	return recs, args.Error(1)
}

func TestRecompute_StorageFailurePropagates(t *testing.T) {
	repo := new(mockDayStatusRepo)
	boom := errors.New("connection refused")
	repo.On("Get", mock.Anything, "EMP001", day("2025-03-05")).Return(nil, boom)

	m := metrics.NewDayStatusMetrics(prometheus.NewRegistry())
	svc := NewDayStatusService(repo, memory.NewAttendanceRepository(), memory.NewLeaveRepository(), memory.NewEmployeeRepository(), calendar.DefaultHolidayPolicy(), calendar.NewFakeClock(now), m)

	err := svc.Recompute(context.Background(), "EMP001", day("2025-03-05"), false)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecomputeCount(metrics.RecomputeOutcomeError, false)))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecompute_PinnedBetweenReadAndWrite(t *testing.T) {
	repo := new(mockDayStatusRepo)
	repo.On("Get", mock.Anything, "EMP001", day("2025-03-05")).Return(nil, nil)
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("daystatus.Record"), false).Return(false, nil)

	m := metrics.NewDayStatusMetrics(prometheus.NewRegistry())
	svc := NewDayStatusService(repo, memory.NewAttendanceRepository(), memory.NewLeaveRepository(), memory.NewEmployeeRepository(), calendar.DefaultHolidayPolicy(), calendar.NewFakeClock(now), m)

	require.NoError(t, svc.Recompute(context.Background(), "EMP001", day("2025-03-05"), false))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecomputeCount(metrics.RecomputeOutcomeSkippedManual, false)))
	repo.AssertExpectations(t)
}

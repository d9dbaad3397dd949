package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/dashboard"
	dayStatusService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/daystatus"
	employeeService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/daystatus-backend-go/internal/service/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	server *httptest.Server
	jwt    jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clock := calendar.NewFakeClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	holidays := calendar.DefaultHolidayPolicy()
	reg := prometheus.NewRegistry()
	m := metrics.NewDayStatusMetrics(reg)

	store := memory.NewDayStatusRepository()
	attendances := memory.NewAttendanceRepository()
	leaves := memory.NewLeaveRepository()
	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "EMP001", Name: "Ana"},
		employee.Employee{ID: "EMP002", Name: "Budi"},
	)

	ds := dayStatusService.NewDayStatusService(store, attendances, leaves, employees, holidays, clock, m)
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")

	router := NewRouter(jwtSvc, Handlers{
		DayStatus:  NewDayStatusHandler(ds),
		Report:     NewReportHandler(reportService.NewReportService(store, attendances, leaves, employees, ds, holidays, clock, m)),
		Dashboard:  NewDashboardHandler(dashboardService.NewDashboardService(attendances, leaves, employees, false, 366)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(memory.TxManager{}, attendances, employees, ds)),
		Leave:      NewLeaveHandler(leaveService.NewLeaveService(memory.TxManager{}, leaves, employees, ds)),
		Employee:   NewEmployeeHandler(employeeService.NewEmployeeService(employees)),
	}, RouterOptions{
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{server: srv, jwt: jwtSvc}
}

func (s *testServer) token(t *testing.T, role jwt.Role) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("tester", role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestRouter_RejectsUnknownRole(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/employees", s.token(t, jwt.Role("guest")), nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_ListEmployees(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/api/v1/employees", s.token(t, jwt.RoleViewer), nil)
	require.Equal(t, http.StatusOK, status)

	var employees []employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &employees))
	require.Len(t, employees, 2)
	assert.Equal(t, "EMP001", employees[0].ID)
}

func TestRouter_DayStatusLifecycle(t *testing.T) {
	s := newTestServer(t)
	viewer := s.token(t, jwt.RoleViewer)
	admin := s.token(t, jwt.RoleAdmin)
	path := "/api/v1/day-statuses/EMP001/2025-03-05"

	status, env := s.do(t, http.MethodGet, path, viewer, nil)
	require.Equal(t, http.StatusOK, status)
	var got struct {
		Pinned   bool `json:"pinned"`
		Resolved struct {
			Status string `json:"status"`
			Source string `json:"source"`
		} `json:"resolved"`
		Stored *struct {
			Status string `json:"status"`
		} `json:"stored"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "ABSENT", got.Resolved.Status)
	assert.Equal(t, "SYSTEM", got.Resolved.Source)
	assert.Nil(t, got.Stored)

	status, _ = s.do(t, http.MethodPut, path+"/override", viewer, map[string]string{"status": "WORKING"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(t, http.MethodPut, path+"/override", admin, map[string]string{"status": "WORKING", "arrival_detail": "LATE"})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.Pinned)
	assert.Equal(t, "MANUAL", got.Resolved.Source)

	// a checked-in fact does not move the pin
	status, _ = s.do(t, http.MethodPost, "/api/v1/attendances", viewer, map[string]string{
		"employee_id": "EMP001",
		"work_date":   "2025-03-05",
		"check_in":    "2025-03-05T08:00:00Z",
		"arrival":     "ON_TIME",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = s.do(t, http.MethodPost, path+"/recompute", viewer, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "WORKING", got.Resolved.Status)
	assert.Equal(t, "MANUAL", got.Resolved.Source)

	status, env = s.do(t, http.MethodDelete, path+"/override", admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.Pinned)
	assert.Equal(t, "ATTENDANCE", got.Resolved.Source)

	status, env = s.do(t, http.MethodDelete, path+"/override", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRouter_DayStatusValidation(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/api/v1/day-statuses/EMP001/2025-13-01", s.token(t, jwt.RoleViewer), nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Error.Details, "date")

	status, env = s.do(t, http.MethodPost, "/api/v1/day-statuses/EMP001/2025-03-05/recompute?force=maybe", s.token(t, jwt.RoleViewer), nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Error.Details, "force")
}

func TestRouter_DayStatusUnknownEmployee(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/api/v1/day-statuses/GHOST/2025-03-05/recompute", s.token(t, jwt.RoleViewer), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = s.do(t, http.MethodPut, "/api/v1/day-statuses/GHOST/2025-03-05/override", s.token(t, jwt.RoleAdmin), map[string]string{"status": "ABSENT"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRouter_MonthlyGrid(t *testing.T) {
	s := newTestServer(t)
	viewer := s.token(t, jwt.RoleViewer)

	status, _ := s.do(t, http.MethodPost, "/api/v1/leaves", viewer, map[string]string{
		"employee_id": "EMP002",
		"leave_date":  "2025-03-05",
		"leave_type":  "sick",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := s.do(t, http.MethodGet, "/api/v1/reports/monthly-grid?month=2025-03&employee_ids=EMP002", viewer, nil)
	require.Equal(t, http.StatusOK, status)

	var grid struct {
		HeadStats struct {
			People    int     `json:"people"`
			AbsentPct float64 `json:"absent_pct"`
		} `json:"head_stats"`
		Days []struct {
			Date string `json:"date"`
			Rows []struct {
				Status string  `json:"status"`
				Note   *string `json:"note"`
			} `json:"rows"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &grid))
	assert.Equal(t, 1, grid.HeadStats.People)
	assert.Equal(t, 100.0, grid.HeadStats.AbsentPct)
	require.Len(t, grid.Days, 31)
	assert.Equal(t, "LEAVE", grid.Days[4].Rows[0].Status)
	require.NotNil(t, grid.Days[4].Rows[0].Note)
	assert.Equal(t, "sick", *grid.Days[4].Rows[0].Note)

	status, _ = s.do(t, http.MethodGet, "/api/v1/reports/monthly-grid?month=March", viewer, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRouter_History(t *testing.T) {
	s := newTestServer(t)
	viewer := s.token(t, jwt.RoleViewer)

	status, env := s.do(t, http.MethodGet, "/api/v1/reports/employees/EMP001/history?month=2025-02", viewer, nil)
	require.Equal(t, http.StatusOK, status)
	var h struct {
		Days []json.RawMessage `json:"days"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &h))
	assert.Len(t, h.Days, 28)

	status, _ = s.do(t, http.MethodGet, "/api/v1/reports/employees/EMP999/history?month=2025-02", viewer, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_DashboardRange(t *testing.T) {
	s := newTestServer(t)
	viewer := s.token(t, jwt.RoleViewer)

	status, env := s.do(t, http.MethodGet, "/api/v1/dashboard/range?start=2025-03-01&end=2025-03-03&count_absent_when_no_data=true", viewer, nil)
	require.Equal(t, http.StatusOK, status)
	var r struct {
		Working int64 `json:"working"`
		Days    []struct {
			Absent int64 `json:"absent"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &r))
	assert.Equal(t, int64(2), r.Working)
	require.Len(t, r.Days, 2)
	assert.Equal(t, int64(2), r.Days[0].Absent)

	status, _ = s.do(t, http.MethodGet, "/api/v1/dashboard/range?start=2025-03-03&end=2025-03-01", viewer, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRouter_AttendanceNotFound(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodDelete, "/api/v1/attendances/0190a5c4-0000-7000-8000-000000000000", s.token(t, jwt.RoleViewer), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t)

	resp, err := http.Get(s.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package http

import (
	"net/http"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	// MonthlyGrid returns the per-day, per-employee grid for a month
	MonthlyGrid(w http.ResponseWriter, r *http.Request)
	// History returns one employee's month
	History(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// MonthlyGrid handles GET /reports/monthly-grid
func (h *reportHandlerImpl) MonthlyGrid(w http.ResponseWriter, r *http.Request) {
	backfill, err := queryBool(r, "backfill")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := report.MonthlyGridRequest{
		Month:       r.URL.Query().Get("month"), // format: YYYY-MM
		EmployeeIDs: queryList(r, "employee_ids"),
		Backfill:    backfill != nil && *backfill,
	}

	result, err := h.reportService.GetMonthlyGrid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History handles GET /reports/employees/{employeeID}/history
func (h *reportHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	backfill, err := queryBool(r, "backfill")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := report.HistoryRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Month:      r.URL.Query().Get("month"),
		Backfill:   backfill != nil && *backfill,
	}

	result, err := h.reportService.GetHistory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

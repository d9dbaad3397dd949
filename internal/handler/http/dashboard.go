package http

import (
	"net/http"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// Range returns per-day attendance counts for [start, end)
	Range(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Range handles GET /dashboard/range
func (h *dashboardHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	countAbsent, err := queryBool(r, "count_absent_when_no_data")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := dashboard.RangeRequest{
		StartDate:             r.URL.Query().Get("start"), // format: YYYY-MM-DD
		EndDate:               r.URL.Query().Get("end"),   // exclusive
		CountAbsentWhenNoData: countAbsent,
	}

	result, err := h.dashboardService.GetRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

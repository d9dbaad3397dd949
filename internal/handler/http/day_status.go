package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/domain/daystatus"
	"github.com/cmlabs-hris/daystatus-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type DayStatusHandler interface {
	// Get resolves one cell and returns it with the stored record, if any
	Get(w http.ResponseWriter, r *http.Request)
	// Recompute materializes one cell
	Recompute(w http.ResponseWriter, r *http.Request)
	// SetOverride pins a manual status
	SetOverride(w http.ResponseWriter, r *http.Request)
	// ClearOverride removes the pin and re-derives the cell
	ClearOverride(w http.ResponseWriter, r *http.Request)
}

type dayStatusHandlerImpl struct {
	dayStatusService daystatus.DayStatusService
}

func NewDayStatusHandler(dayStatusService daystatus.DayStatusService) DayStatusHandler {
	return &dayStatusHandlerImpl{dayStatusService: dayStatusService}
}

func dayKey(r *http.Request) daystatus.DayKeyRequest {
	return daystatus.DayKeyRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       chi.URLParam(r, "date"),
	}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	userID, _ := claims["user_id"].(string)
	return userID
}

// Get handles GET /day-statuses/{employeeID}/{date}
func (h *dayStatusHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.dayStatusService.GetDayStatus(r.Context(), dayKey(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recompute handles POST /day-statuses/{employeeID}/{date}/recompute
func (h *dayStatusHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	force, err := queryBool(r, "force")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := daystatus.RecomputeRequest{DayKeyRequest: dayKey(r)}
	if force != nil {
		req.Force = *force
	}

	result, err := h.dayStatusService.RecomputeDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day status recomputed", result)
}

// SetOverride handles PUT /day-statuses/{employeeID}/{date}/override
func (h *dayStatusHandlerImpl) SetOverride(w http.ResponseWriter, r *http.Request) {
	var req daystatus.SetOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetOverride decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	// path wins over anything in the body
	req.DayKeyRequest = dayKey(r)

	result, err := h.dayStatusService.SetOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	slog.Info("Manual override set", "actor", getUserIDFromContext(r), "employee_id", req.EmployeeID, "date", req.Date)

	response.SuccessWithMessage(w, "Manual override set", result)
}

// ClearOverride handles DELETE /day-statuses/{employeeID}/{date}/override
func (h *dayStatusHandlerImpl) ClearOverride(w http.ResponseWriter, r *http.Request) {
	key := dayKey(r)
	result, err := h.dayStatusService.ClearOverride(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	slog.Info("Manual override cleared", "actor", getUserIDFromContext(r), "employee_id", key.EmployeeID, "date", key.Date)

	response.SuccessWithMessage(w, "Manual override cleared", result)
}

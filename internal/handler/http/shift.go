package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/handler/http/response"
	shiftService "github.com/shiftwise-hq/worktime-backend-go/internal/service/shift"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shiftService.Service
}

func NewShiftHandler(svc shiftService.Service) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: svc,
	}
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements ShiftHandler.
func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shiftID")

	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.UpdateShift(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", result)
}

// Delete implements ShiftHandler.
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shiftID")

	if err := h.shiftService.DeleteShift(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Assign implements ShiftHandler.
func (h *shiftHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req shift.AssignShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.AssignShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned", result)
}

// ListAssignments implements ShiftHandler. Returns the roster for the date
// query parameter, defaulting to today.
func (h *shiftHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	workDate := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(w, "date must be YYYY-MM-DD", nil)
			return
		}
		workDate = parsed
	}

	result, err := h.shiftService.ListAssignments(r.Context(), workDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Unassign implements ShiftHandler.
func (h *shiftHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assignmentID")

	if err := h.shiftService.UnassignShift(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift assignment removed", nil)
}

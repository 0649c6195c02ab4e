package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/auth"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/performance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.Service
}

func NewPerformanceHandler(svc performance.Service) PerformanceHandler {
	return &performanceHandlerImpl{
		performanceService: svc,
	}
}

// GetMy implements PerformanceHandler.
func (h *performanceHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	employeeID, err := claimedEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.performanceService.GetMonthly(r.Context(), employeeID, monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements PerformanceHandler. Admin lookup for any employee.
func (h *performanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.performanceService.GetMonthly(r.Context(), employeeID, monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recompute implements PerformanceHandler.
func (h *performanceHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.performanceService.Recompute(r.Context(), employeeID, monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Performance recomputed", result)
}

// monthParam reads the month query parameter, defaulting to the current
// month.
func monthParam(r *http.Request) string {
	if month := r.URL.Query().Get("month"); month != "" {
		return month
	}
	return time.Now().Format("2006-01")
}

// claimedEmployeeID extracts the authenticated employee's ID from the verified
// token claims.
func claimedEmployeeID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", auth.ErrInvalidToken
	}
	return employeeID, nil
}

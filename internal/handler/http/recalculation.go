package http

import (
	"errors"
	"net/http"

	"github.com/shiftwise-hq/worktime-backend-go/internal/handler/http/response"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/recalculation"
)

type RecalculationHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
}

type recalculationHandlerImpl struct {
	recalcService *recalculation.Service
}

func NewRecalculationHandler(svc *recalculation.Service) RecalculationHandler {
	return &recalculationHandlerImpl{
		recalcService: svc,
	}
}

// Run implements RecalculationHandler. Triggers a full recalculation over all
// closed records, typically after a shift definition change.
func (h *recalculationHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.recalcService.RunFull(r.Context())
	if err != nil {
		if errors.Is(err, recalculation.ErrRunInProgress) {
			response.Conflict(w, err.Error())
			return
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recalculation completed", result)
}

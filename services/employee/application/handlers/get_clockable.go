package handlers

import (
	"net/http"

	"github.com/ghuser/bizdesk/pkg/errhttp"
	"github.com/ghuser/bizdesk/pkg/httpx"
	appsvcs "github.com/ghuser/bizdesk/services/employee/application/services"
)

// GetClockableHandler handles GET /employees/clock-in/{businessId}.
type GetClockableHandler struct {
	svc *appsvcs.Services
}

// NewGetClockableHandler returns a GetClockableHandler backed by the given services.
func NewGetClockableHandler(svc *appsvcs.Services) *GetClockableHandler {
	return &GetClockableHandler{svc: svc}
}

// Execute lists the employees a kiosk can clock in or out.
//
//	@Summary		List clockable employees
//	@Description	Active employees of a business with their current clock state
//	@Tags			time-clock
//	@Produce		json
//	@Param			businessId	path		string	true	"Business ID"	format(uuid)
//	@Success		200			{array}		EmployeeSummaryResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/employees/clock-in/{businessId} [get]
func (h *GetClockableHandler) Execute(w http.ResponseWriter, r *http.Request) {
	businessID, ok := businessIDParam(w, r)
	if !ok {
		return
	}

	summaries, err := h.svc.Clock.ListClockable(r.Context(), businessID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	resp := make([]EmployeeSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = toSummaryResponse(s)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

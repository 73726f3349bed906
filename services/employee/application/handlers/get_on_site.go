package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/httpx"
	"github.com/ghuser/bizdesk/pkg/logger"
	appsvcs "github.com/ghuser/bizdesk/services/employee/application/services"
)

// OnSiteResponse lists the employees currently on site according to the presence board.
type OnSiteResponse struct {
	BusinessID  uuid.UUID `json:"businessId"  example:"550e8400-e29b-41d4-a716-446655440000"`
	EmployeeIDs []string  `json:"employeeIds" example:"ACM001,ACM004"`
} // @name OnSiteResponse

// GetOnSiteHandler handles GET /employees/on-site/{businessId}.
type GetOnSiteHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewGetOnSiteHandler returns a GetOnSiteHandler backed by the given services.
func NewGetOnSiteHandler(svc *appsvcs.Services, log logger.Logger) *GetOnSiteHandler {
	return &GetOnSiteHandler{svc: svc, log: log}
}

// Execute reads the presence board. It may lag the clock state by a few seconds.
//
//	@Summary		On-site employees
//	@Description	Employee IDs currently checked in, from the presence board
//	@Tags			time-clock
//	@Produce		json
//	@Param			businessId	path		string	true	"Business ID"	format(uuid)
//	@Success		200			{object}	OnSiteResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/employees/on-site/{businessId} [get]
func (h *GetOnSiteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	businessID, ok := businessIDParam(w, r)
	if !ok {
		return
	}
	if h.svc.Presence == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "presence board not configured")
		return
	}

	ids, err := h.svc.Presence.OnSite(r.Context(), businessID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "read presence board failed", "business_id", businessID, "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	httpx.JSON(w, http.StatusOK, OnSiteResponse{BusinessID: businessID, EmployeeIDs: ids})
}

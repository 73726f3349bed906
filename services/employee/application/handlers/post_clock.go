package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/errhttp"
	"github.com/ghuser/bizdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/bizdesk/pkg/validator"
	appsvcs "github.com/ghuser/bizdesk/services/employee/application/services"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

// ClockRequest is the request body for POST /employees/clock/{action}/{employeeId}.
type ClockRequest struct {
	BusinessID string `json:"businessId" validate:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
} // @name ClockRequest

// ClockedEmployee is the employee part of a clock confirmation.
type ClockedEmployee struct {
	Name               string    `json:"name"               example:"Dana Reyes"`
	EmployeeID         string    `json:"employeeId"         example:"ACM001"`
	Action             string    `json:"action"             example:"in"`
	Timestamp          time.Time `json:"timestamp"          example:"2025-03-01T09:00:00Z"`
	CurrentlyCheckedIn bool      `json:"currentlyCheckedIn" example:"true"`
} // @name ClockedEmployee

// ClockResponse confirms a clock transition.
type ClockResponse struct {
	Message  string          `json:"message" example:"Successfully clocked in"`
	Employee ClockedEmployee `json:"employee"`
} // @name ClockResponse

// PostClockHandler handles POST /employees/clock/{action}/{employeeId}.
type PostClockHandler struct {
	svc *appsvcs.Services
}

// NewPostClockHandler returns a PostClockHandler backed by the given services.
func NewPostClockHandler(svc *appsvcs.Services) *PostClockHandler {
	return &PostClockHandler{svc: svc}
}

// Execute clocks an employee in or out.
//
//	@Summary		Clock in or out
//	@Description	Applies a clock transition using the server time
//	@Tags			time-clock
//	@Accept			json
//	@Produce		json
//	@Param			action		path		string			true	"Clock action"	Enums(in, out)
//	@Param			employeeId	path		string			true	"Kiosk employee ID"
//	@Param			request		body		ClockRequest	true	"Business of the kiosk"
//	@Success		200			{object}	ClockResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/employees/clock/{action}/{employeeId} [post]
func (h *PostClockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	action, err := models.ParseClockAction(chi.URLParam(r, "action"))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ClockRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Clock.Clock(r.Context(), action, uuid.MustParse(req.BusinessID), chi.URLParam(r, "employeeId"))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ClockResponse{
		Message: "Successfully " + res.Action.Past(),
		Employee: ClockedEmployee{
			Name:               res.Name,
			EmployeeID:         res.EmployeeID,
			Action:             string(res.Action),
			Timestamp:          res.Timestamp,
			CurrentlyCheckedIn: res.CurrentlyCheckedIn,
		},
	})
}

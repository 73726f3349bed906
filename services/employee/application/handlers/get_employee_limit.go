package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/errhttp"
	"github.com/ghuser/bizdesk/pkg/httpx"
	appsvcs "github.com/ghuser/bizdesk/services/employee/application/services"
)

// EmployeeLimitResponse reports a business's plan usage. Limit and remaining
// are -1 on unlimited plans.
type EmployeeLimitResponse struct {
	BusinessID      uuid.UUID `json:"businessId"      example:"550e8400-e29b-41d4-a716-446655440000"`
	Plan            string    `json:"plan"            example:"basic"`
	ActiveEmployees int       `json:"activeEmployees" example:"12"`
	EmployeeLimit   int       `json:"employeeLimit"   example:"25"`
	Remaining       int       `json:"remaining"       example:"13"`
	CanAddEmployee  bool      `json:"canAddEmployee"  example:"true"`
} // @name EmployeeLimitResponse

// GetEmployeeLimitHandler handles GET /employees/limit/{businessId}.
type GetEmployeeLimitHandler struct {
	svc *appsvcs.Services
}

// NewGetEmployeeLimitHandler returns a GetEmployeeLimitHandler backed by the given services.
func NewGetEmployeeLimitHandler(svc *appsvcs.Services) *GetEmployeeLimitHandler {
	return &GetEmployeeLimitHandler{svc: svc}
}

// Execute reports whether the business can add another employee.
//
//	@Summary		Employee limit
//	@Description	Active employee count against the plan limit
//	@Tags			employees
//	@Produce		json
//	@Param			businessId	path		string	true	"Business ID"	format(uuid)
//	@Success		200			{object}	EmployeeLimitResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/employees/limit/{businessId} [get]
func (h *GetEmployeeLimitHandler) Execute(w http.ResponseWriter, r *http.Request) {
	businessID, ok := businessIDParam(w, r)
	if !ok {
		return
	}

	limit, err := h.svc.Employee.Limit(r.Context(), businessID)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, EmployeeLimitResponse{
		BusinessID:      limit.BusinessID,
		Plan:            string(limit.Plan),
		ActiveEmployees: limit.ActiveEmployees,
		EmployeeLimit:   limit.EmployeeLimit,
		Remaining:       limit.Remaining,
		CanAddEmployee:  limit.CanAddEmployee,
	})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/auth"
	"github.com/ghuser/bizdesk/pkg/errhttp"
	"github.com/ghuser/bizdesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/bizdesk/pkg/validator"
	appsvcs "github.com/ghuser/bizdesk/services/employee/application/services"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

// CreateEmployeeRequest is the request body for POST /employees.
type CreateEmployeeRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=120" example:"Dana Reyes"`
	Position string `json:"position" validate:"max=80"                 example:"Barista"`
	Email    string `json:"email"    validate:"omitempty,email"        example:"dana@example.com"`
	Avatar   string `json:"avatar"   validate:"omitempty,url"          example:"https://cdn.example.com/avatars/dana.png"`
} // @name CreateEmployeeRequest

// EmployeeResponse is a created employee.
type EmployeeResponse struct {
	ID                 uuid.UUID `json:"id"                 example:"123e4567-e89b-12d3-a456-426614174000"`
	BusinessID         uuid.UUID `json:"businessId"         example:"550e8400-e29b-41d4-a716-446655440000"`
	EmployeeID         string    `json:"employeeId"         example:"ACM001"`
	Name               string    `json:"name"               example:"Dana Reyes"`
	Position           string    `json:"position"           example:"Barista"`
	Email              string    `json:"email,omitempty"    example:"dana@example.com"`
	Avatar             string    `json:"avatar,omitempty"`
	IsActive           bool      `json:"isActive"           example:"true"`
	CurrentlyCheckedIn bool      `json:"currentlyCheckedIn" example:"false"`
	CreatedAt          time.Time `json:"createdAt"          example:"2025-03-01T09:00:00Z"`
} // @name EmployeeResponse

// PostEmployeeHandler handles POST /employees.
type PostEmployeeHandler struct {
	svc *appsvcs.Services
}

// NewPostEmployeeHandler returns a PostEmployeeHandler backed by the given services.
func NewPostEmployeeHandler(svc *appsvcs.Services) *PostEmployeeHandler {
	return &PostEmployeeHandler{svc: svc}
}

// Execute adds an employee to the session's business.
//
//	@Summary		Create employee
//	@Description	Adds an employee to the authenticated business if its plan allows it
//	@Tags			employees
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateEmployeeRequest	true	"Employee details"
//	@Success		201		{object}	EmployeeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/employees [post]
func (h *PostEmployeeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	businessID, err := auth.BusinessIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateEmployeeRequest](w, r)
	if !ok {
		return
	}

	e, err := h.svc.Employee.Create(r.Context(), businessID, models.NewEmployeeParams{
		Name:     req.Name,
		Position: req.Position,
		Email:    req.Email,
		Avatar:   req.Avatar,
	})
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, EmployeeResponse{
		ID:                 e.ID,
		BusinessID:         e.BusinessID,
		EmployeeID:         e.EmployeeID,
		Name:               e.Name.String(),
		Position:           e.Position,
		Email:              e.Email,
		Avatar:             e.Avatar,
		IsActive:           e.IsActive,
		CurrentlyCheckedIn: e.CurrentlyCheckedIn,
		CreatedAt:          e.CreatedAt,
	})
}

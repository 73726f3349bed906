package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/httpx"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid clock transition: employee ACM001 is already clocked in"`
} // @name ErrorResponse

// EmployeeSummaryResponse is the kiosk view of one employee.
type EmployeeSummaryResponse struct {
	Name               string `json:"name"               example:"Dana Reyes"`
	Position           string `json:"position"           example:"Barista"`
	EmployeeID         string `json:"employeeId"         example:"ACM001"`
	CurrentlyCheckedIn bool   `json:"currentlyCheckedIn" example:"false"`
	Avatar             string `json:"avatar,omitempty"   example:"https://cdn.example.com/avatars/acm001.png"`
} // @name EmployeeSummary

func toSummaryResponse(s models.EmployeeSummary) EmployeeSummaryResponse {
	return EmployeeSummaryResponse{
		Name:               s.Name,
		Position:           s.Position,
		EmployeeID:         s.EmployeeID,
		CurrentlyCheckedIn: s.CurrentlyCheckedIn,
		Avatar:             s.Avatar,
	}
}

// businessIDParam parses the {businessId} path parameter, answering 400 when it is malformed.
func businessIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "businessId"))
	if err != nil || id == uuid.Nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid business id")
		return uuid.Nil, false
	}
	return id, true
}

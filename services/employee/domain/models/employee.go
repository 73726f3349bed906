package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
)

// Employee is the aggregate root of the time-clock context.
type Employee struct {
	ID                 uuid.UUID
	BusinessID         uuid.UUID // tenant scope, every query filters on it
	EmployeeID         string    // kiosk-facing id, unique per business
	Name               EmployeeName
	Position           string
	Email              string
	Avatar             string
	IsActive           bool
	CurrentlyCheckedIn bool
	LastCheckIn        *time.Time
	LastCheckOut       *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewEmployeeParams carries the administrator-supplied fields of a new employee.
type NewEmployeeParams struct {
	Name     string
	Position string
	Email    string
	Avatar   string
}

// NewEmployee builds an active, checked-out employee with every default set explicitly.
func NewEmployee(businessID uuid.UUID, employeeID string, p NewEmployeeParams, now time.Time) (*Employee, error) {
	name, err := NewEmployeeName(p.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", employeedomain.ErrInvalidEmployee, err)
	}
	if businessID == uuid.Nil {
		return nil, fmt.Errorf("%w: business_id must be set", employeedomain.ErrInvalidEmployee)
	}
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id must be set", employeedomain.ErrInvalidEmployee)
	}
	now = now.UTC()
	return &Employee{
		ID:                 uuid.New(),
		BusinessID:         businessID,
		EmployeeID:         employeeID,
		Name:               name,
		Position:           p.Position,
		Email:              p.Email,
		Avatar:             p.Avatar,
		IsActive:           true,
		CurrentlyCheckedIn: false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// State reports the current clock state.
func (e *Employee) State() ClockState {
	if e.CurrentlyCheckedIn {
		return CheckedIn
	}
	return CheckedOut
}

// Apply performs the transition in memory. Callers that persist the result
// must make the read of e and the write of the result one atomic step.
func (e *Employee) Apply(t ClockTransition) error {
	if !e.IsActive {
		return employeedomain.ErrEmployeeNotFound
	}
	if e.State() != t.Action.Source() {
		return fmt.Errorf("%w: employee %s is already %s",
			employeedomain.ErrInvalidTransition, e.EmployeeID, t.Action.Past())
	}
	if t.SessionStart != nil && (e.LastCheckIn == nil || !e.LastCheckIn.Equal(*t.SessionStart)) {
		return fmt.Errorf("%w: session starting %s already ended",
			employeedomain.ErrInvalidTransition, t.SessionStart.Format(time.RFC3339))
	}

	// A stamp never precedes the opposite one already stored, even if the
	// server clock stepped back between the two transitions.
	at := t.At
	switch t.Action {
	case ActionIn:
		at = notBefore(at, e.LastCheckOut)
		e.CurrentlyCheckedIn = true
		e.LastCheckIn = &at
	case ActionOut:
		at = notBefore(at, e.LastCheckIn)
		e.CurrentlyCheckedIn = false
		e.LastCheckOut = &at
	default:
		return employeedomain.ErrInvalidClockAction
	}
	e.UpdatedAt = at
	return nil
}

func notBefore(at time.Time, floor *time.Time) time.Time {
	if floor != nil && at.Before(*floor) {
		return *floor
	}
	return at
}

// Result builds the kiosk confirmation for a transition that was just applied.
// The timestamp is the stored stamp of that transition.
func (e *Employee) Result(action ClockAction) *ClockResult {
	var at time.Time
	switch action {
	case ActionIn:
		if e.LastCheckIn != nil {
			at = *e.LastCheckIn
		}
	case ActionOut:
		if e.LastCheckOut != nil {
			at = *e.LastCheckOut
		}
	}
	return &ClockResult{
		Name:               e.Name.String(),
		EmployeeID:         e.EmployeeID,
		Action:             action,
		Timestamp:          at,
		CurrentlyCheckedIn: e.CurrentlyCheckedIn,
	}
}

// EmployeeSummary is the kiosk projection of an employee.
type EmployeeSummary struct {
	Name               string
	Position           string
	EmployeeID         string
	CurrentlyCheckedIn bool
	Avatar             string
}

// Summary projects the fields a kiosk needs.
func (e *Employee) Summary() EmployeeSummary {
	return EmployeeSummary{
		Name:               e.Name.String(),
		Position:           e.Position,
		EmployeeID:         e.EmployeeID,
		CurrentlyCheckedIn: e.CurrentlyCheckedIn,
		Avatar:             e.Avatar,
	}
}

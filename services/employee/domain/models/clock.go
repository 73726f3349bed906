package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
)

// ClockState is the attendance state of an employee.
type ClockState string

const (
	CheckedOut ClockState = "checked_out"
	CheckedIn  ClockState = "checked_in"
)

// ClockAction is the kiosk action requested by an employee.
type ClockAction string

const (
	ActionIn  ClockAction = "in"
	ActionOut ClockAction = "out"
)

// ParseClockAction accepts exactly "in" or "out".
func ParseClockAction(s string) (ClockAction, error) {
	switch ClockAction(s) {
	case ActionIn, ActionOut:
		return ClockAction(s), nil
	default:
		return "", fmt.Errorf("%w: %q", employeedomain.ErrInvalidClockAction, s)
	}
}

// Target is the state an employee ends up in after the action.
func (a ClockAction) Target() ClockState {
	if a == ActionIn {
		return CheckedIn
	}
	return CheckedOut
}

// Source is the only state the action may be applied from.
func (a ClockAction) Source() ClockState {
	if a == ActionIn {
		return CheckedOut
	}
	return CheckedIn
}

// Past returns the verb used in confirmation messages ("clocked in").
func (a ClockAction) Past() string {
	return "clocked " + string(a)
}

// ClockTransition is a conditional state change handed to the repository.
// It applies only if the stored state equals Action.Source(), and, when
// SessionStart is set, only if the stored LastCheckIn equals it.
type ClockTransition struct {
	BusinessID   uuid.UUID
	EmployeeID   string
	Action       ClockAction
	At           time.Time
	SessionStart *time.Time
}

// ClockResult is the confirmation returned to the kiosk.
type ClockResult struct {
	Name               string
	EmployeeID         string
	Action             ClockAction
	Timestamp          time.Time
	CurrentlyCheckedIn bool
}

package domain

import "errors"

// Sentinel errors for the employee domain. Use errors.Is() to check these.
var (
	// ErrEmployeeNotFound indicates no active employee matches the id within the business.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrBusinessNotFound indicates the referenced business does not exist.
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidTransition indicates the clock action does not match the current clock state.
	ErrInvalidTransition = errors.New("invalid clock transition")

	// ErrInvalidClockAction indicates an action other than "in" or "out".
	ErrInvalidClockAction = errors.New("invalid clock action")

	// ErrStoreUnavailable wraps persistence failures. Safe to retry once the caller re-reads state.
	ErrStoreUnavailable = errors.New("employee store unavailable")

	// ErrEmployeeLimitReached indicates the business plan does not allow more active employees.
	ErrEmployeeLimitReached = errors.New("employee limit reached")

	// ErrEmployeeAlreadyExists indicates the generated employee id is already taken in the business.
	ErrEmployeeAlreadyExists = errors.New("employee already exists")

	// ErrInvalidEmployee indicates the employee fields violate domain constraints.
	ErrInvalidEmployee = errors.New("invalid employee")

	// ErrInvalidPlan indicates an unknown subscription plan.
	ErrInvalidPlan = errors.New("invalid subscription plan")
)

// Package services contains stateless domain services for the employee bounded context.
// They operate purely on domain types and have no infrastructure dependencies.
package services

import (
	"fmt"

	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

// CanAddEmployee reports whether a business with activeCount active employees
// may add another one under its plan.
func CanAddEmployee(business *models.Business, activeCount int) bool {
	if business.Unlimited() {
		return true
	}
	return activeCount < business.EmployeeLimit
}

// EnsureCanAddEmployee is CanAddEmployee as an error for the creation path.
func EnsureCanAddEmployee(business *models.Business, activeCount int) error {
	if CanAddEmployee(business, activeCount) {
		return nil
	}
	return fmt.Errorf("%w: plan %s allows %d active employees",
		employeedomain.ErrEmployeeLimitReached, business.Plan, business.EmployeeLimit)
}

// RemainingSlots returns how many employees can still be added, or -1 when unlimited.
func RemainingSlots(business *models.Business, activeCount int) int {
	if business.Unlimited() {
		return models.UnlimitedEmployees
	}
	if activeCount >= business.EmployeeLimit {
		return 0
	}
	return business.EmployeeLimit - activeCount
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

// EmployeeRepository is the persistence interface for the Employee aggregate.
// The domain layer owns this interface; infrastructure implements it.
// Every method is scoped by business ID.
type EmployeeRepository interface {
	// ApplyClockTransition applies t as one conditional update against the stored
	// employee and returns the updated aggregate. Returns ErrEmployeeNotFound when
	// no active employee matches and ErrInvalidTransition when the stored state
	// does not allow t.
	ApplyClockTransition(ctx context.Context, t models.ClockTransition) (*models.Employee, error)

	// GetActive returns the active employee with the given kiosk id.
	GetActive(ctx context.Context, businessID uuid.UUID, employeeID string) (*models.Employee, error)

	// ListActive returns the active employees of a business ordered by name.
	ListActive(ctx context.Context, businessID uuid.UUID) ([]*models.Employee, error)

	// CountActive returns the number of active employees of a business.
	CountActive(ctx context.Context, businessID uuid.UUID) (int, error)

	// NextSequence returns the sequence number for the next employee id,
	// counting inactive employees so ids are never reused.
	NextSequence(ctx context.Context, businessID uuid.UUID) (int, error)

	// LockBusiness serialises creation for one business until the surrounding
	// transaction ends.
	LockBusiness(ctx context.Context, businessID uuid.UUID) error

	// Save inserts a new employee. Returns ErrEmployeeAlreadyExists on duplicate ids.
	Save(ctx context.Context, employee *models.Employee) error
}

// BusinessRepository reads tenants.
type BusinessRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
}

// Transactor runs fn so that repository calls made with the ctx it receives
// share one transaction.
type Transactor interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

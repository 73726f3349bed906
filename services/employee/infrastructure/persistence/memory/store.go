// Package memory holds process-local implementations of the employee
// repositories. It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

type employeeKey struct {
	businessID uuid.UUID
	employeeID string
}

// EmployeeRepository keeps employees in a map guarded by a single mutex.
// Transitions read, check and write under the lock, so they are atomic.
type EmployeeRepository struct {
	mu        sync.Mutex
	employees map[employeeKey]*models.Employee
	created   map[uuid.UUID]int
}

// NewEmployeeRepository returns an empty EmployeeRepository.
func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		employees: make(map[employeeKey]*models.Employee),
		created:   make(map[uuid.UUID]int),
	}
}

// ApplyClockTransition applies t to the stored employee under the lock.
func (r *EmployeeRepository) ApplyClockTransition(_ context.Context, t models.ClockTransition) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.employees[employeeKey{t.BusinessID, t.EmployeeID}]
	if !ok {
		return nil, employeedomain.ErrEmployeeNotFound
	}
	next := clone(stored)
	if err := next.Apply(t); err != nil {
		return nil, err
	}
	r.employees[employeeKey{t.BusinessID, t.EmployeeID}] = next
	return clone(next), nil
}

// GetActive returns a copy of an active employee. Returns ErrEmployeeNotFound if absent.
func (r *EmployeeRepository) GetActive(_ context.Context, businessID uuid.UUID, employeeID string) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[employeeKey{businessID, employeeID}]
	if !ok || !e.IsActive {
		return nil, employeedomain.ErrEmployeeNotFound
	}
	return clone(e), nil
}

// ListActive returns the active employees of a business ordered by name, then employee id.
func (r *EmployeeRepository) ListActive(_ context.Context, businessID uuid.UUID) ([]*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Employee, 0)
	for k, e := range r.employees {
		if k.businessID == businessID && e.IsActive {
			out = append(out, clone(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

// CountActive returns the number of active employees of a business.
func (r *EmployeeRepository) CountActive(_ context.Context, businessID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for k, e := range r.employees {
		if k.businessID == businessID && e.IsActive {
			n++
		}
	}
	return n, nil
}

// NextSequence returns one more than the number of employees ever created for the business.
func (r *EmployeeRepository) NextSequence(_ context.Context, businessID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created[businessID] + 1, nil
}

// LockBusiness is a no-op; Transactor serialises every read-write unit.
func (r *EmployeeRepository) LockBusiness(context.Context, uuid.UUID) error {
	return nil
}

// Save inserts a new employee. Returns ErrEmployeeAlreadyExists if the kiosk id is taken.
func (r *EmployeeRepository) Save(_ context.Context, e *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := employeeKey{e.BusinessID, e.EmployeeID}
	if _, exists := r.employees[k]; exists {
		return employeedomain.ErrEmployeeAlreadyExists
	}
	r.employees[k] = clone(e)
	r.created[e.BusinessID]++
	return nil
}

// Deactivate marks an employee inactive. Inactive employees are invisible to
// every lookup but still count towards NextSequence.
func (r *EmployeeRepository) Deactivate(businessID uuid.UUID, employeeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.employees[employeeKey{businessID, employeeID}]; ok {
		e.IsActive = false
	}
}

func clone(e *models.Employee) *models.Employee {
	c := *e
	if e.LastCheckIn != nil {
		t := *e.LastCheckIn
		c.LastCheckIn = &t
	}
	if e.LastCheckOut != nil {
		t := *e.LastCheckOut
		c.LastCheckOut = &t
	}
	return &c
}

// BusinessRepository is a fixed set of businesses registered at startup.
type BusinessRepository struct {
	mu         sync.RWMutex
	businesses map[uuid.UUID]*models.Business
}

// NewBusinessRepository returns a BusinessRepository holding businesses.
func NewBusinessRepository(businesses ...*models.Business) *BusinessRepository {
	r := &BusinessRepository{businesses: make(map[uuid.UUID]*models.Business, len(businesses))}
	for _, b := range businesses {
		r.businesses[b.ID] = b
	}
	return r
}

// Put adds or replaces a business.
func (r *BusinessRepository) Put(b *models.Business) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.businesses[b.ID] = b
}

// GetByID returns ErrBusinessNotFound when no business has the given id.
func (r *BusinessRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.businesses[id]
	if !ok {
		return nil, employeedomain.ErrBusinessNotFound
	}
	c := *b
	return &c, nil
}

// Transactor runs read-write units one at a time. There is no rollback.
type Transactor struct {
	mu sync.Mutex
}

// WithinReadWrite runs fn while holding the transactor's lock.
func (t *Transactor) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

// DemoBusinessID identifies the business seeded by NewDemoBusinessRepository.
var DemoBusinessID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// NewDemoBusinessRepository returns a BusinessRepository holding one free-plan
// restaurant, so a memory-backed process is usable without seeding.
func NewDemoBusinessRepository() *BusinessRepository {
	b, err := models.NewBusiness(DemoBusinessID, "Demo Cafe", models.IndustryRestaurant, models.PlanFree)
	if err != nil {
		panic(err)
	}
	return NewBusinessRepository(b)
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/logger"
	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	domainevents "github.com/ghuser/bizdesk/services/employee/domain/events"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
	"github.com/ghuser/bizdesk/services/employee/domain/repositories"
	domainsvcs "github.com/ghuser/bizdesk/services/employee/domain/services"
)

// EmployeeLimit describes how many employees a business may still add.
type EmployeeLimit struct {
	BusinessID      uuid.UUID
	Plan            models.Plan
	ActiveEmployees int
	EmployeeLimit   int // models.UnlimitedEmployees for unlimited plans
	Remaining       int // models.UnlimitedEmployees for unlimited plans
	CanAddEmployee  bool
}

// EmployeeService handles the employee creation path and its plan limit.
type EmployeeService struct {
	employees  repositories.EmployeeRepository
	businesses repositories.BusinessRepository
	tx         repositories.Transactor
	publisher  Publisher
	log        logger.Logger
	now        func() time.Time
}

// NewEmployeeService returns an EmployeeService. publisher may be nil.
func NewEmployeeService(
	employees repositories.EmployeeRepository,
	businesses repositories.BusinessRepository,
	tx repositories.Transactor,
	publisher Publisher,
	log logger.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees:  employees,
		businesses: businesses,
		tx:         tx,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

// CanAddEmployee reports whether the business is below its plan's employee limit.
func (s *EmployeeService) CanAddEmployee(ctx context.Context, businessID uuid.UUID) (bool, error) {
	limit, err := s.Limit(ctx, businessID)
	if err != nil {
		return false, err
	}
	return limit.CanAddEmployee, nil
}

// Limit returns the plan limit and current usage of a business.
func (s *EmployeeService) Limit(ctx context.Context, businessID uuid.UUID) (*EmployeeLimit, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, s.storeError(ctx, "load business", err)
	}
	count, err := s.employees.CountActive(ctx, businessID)
	if err != nil {
		return nil, s.storeError(ctx, "count employees", err)
	}
	return &EmployeeLimit{
		BusinessID:      business.ID,
		Plan:            business.Plan,
		ActiveEmployees: count,
		EmployeeLimit:   business.EmployeeLimit,
		Remaining:       domainsvcs.RemainingSlots(business, count),
		CanAddEmployee:  domainsvcs.CanAddEmployee(business, count),
	}, nil
}

// Create adds an employee to the business. The count, the limit check and the
// insert run in one transaction that holds the business lock, so two
// concurrent creations cannot both take the last slot.
func (s *EmployeeService) Create(ctx context.Context, businessID uuid.UUID, p models.NewEmployeeParams) (*models.Employee, error) {
	if _, err := models.NewEmployeeName(p.Name); err != nil {
		return nil, fmt.Errorf("%w: %w", employeedomain.ErrInvalidEmployee, err)
	}

	var created *models.Employee
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		business, err := s.businesses.GetByID(ctx, businessID)
		if err != nil {
			return err
		}
		if err := s.employees.LockBusiness(ctx, businessID); err != nil {
			return err
		}
		count, err := s.employees.CountActive(ctx, businessID)
		if err != nil {
			return err
		}
		if err := domainsvcs.EnsureCanAddEmployee(business, count); err != nil {
			return err
		}
		seq, err := s.employees.NextSequence(ctx, businessID)
		if err != nil {
			return err
		}
		employeeID, err := models.NewEmployeeID(business.Name, seq)
		if err != nil {
			return err
		}
		e, err := models.NewEmployee(businessID, employeeID, p, s.now().Truncate(time.Microsecond))
		if err != nil {
			return err
		}
		if err := s.employees.Save(ctx, e); err != nil {
			return err
		}
		created = e
		return nil
	})
	if err != nil {
		return nil, s.storeError(ctx, "create employee", err)
	}

	s.log.InfoContext(ctx, "employee created",
		"business_id", businessID, "employee_id", created.EmployeeID)
	s.publishCreated(ctx, created)
	return created, nil
}

// storeError passes domain errors through and wraps everything else in ErrStoreUnavailable.
func (s *EmployeeService) storeError(ctx context.Context, op string, err error) error {
	for _, domainErr := range []error{
		employeedomain.ErrBusinessNotFound,
		employeedomain.ErrEmployeeLimitReached,
		employeedomain.ErrEmployeeAlreadyExists,
		employeedomain.ErrInvalidEmployee,
		employeedomain.ErrInvalidPlan,
	} {
		if errors.Is(err, domainErr) {
			return err
		}
	}
	s.log.ErrorContext(ctx, op+" failed", "error", err)
	return fmt.Errorf("%w: %s: %w", employeedomain.ErrStoreUnavailable, op, err)
}

func (s *EmployeeService) publishCreated(ctx context.Context, e *models.Employee) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(domainevents.EmployeeCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		BusinessID: e.BusinessID,
		EmployeeID: e.EmployeeID,
		Name:       e.Name.String(),
		OccurredAt: e.CreatedAt,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "marshal employee created event", "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(ctx, domainevents.TopicEmployeeCreated, msg); err != nil {
		s.log.WarnContext(ctx, "publish employee created event failed",
			"employee_id", e.EmployeeID, "error", err)
	}
}

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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/ghuser/bizdesk/pkg/logger"
	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	domainevents "github.com/ghuser/bizdesk/services/employee/domain/events"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
	"github.com/ghuser/bizdesk/services/employee/domain/repositories"
)

// Publisher is satisfied by *events.EventBus.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// ShiftScheduler starts the automatic clock-out timer for a session that just opened.
type ShiftScheduler interface {
	ScheduleAutoClockOut(ctx context.Context, businessID uuid.UUID, employeeID string, sessionStart time.Time) error
}

// ClockService runs kiosk clock transitions. Each transition is a single
// conditional write in the repository; the service adds the server timestamp,
// error translation and the post-commit side effects.
type ClockService struct {
	repo        repositories.EmployeeRepository
	publisher   Publisher
	scheduler   ShiftScheduler
	log         logger.Logger
	now         func() time.Time
	transitions metric.Int64Counter
}

// ClockOption configures optional ClockService collaborators.
type ClockOption func(*ClockService)

// WithPublisher makes the service publish employee.clocked after every transition.
func WithPublisher(p Publisher) ClockOption {
	return func(s *ClockService) { s.publisher = p }
}

// WithShiftScheduler makes the service schedule an auto clock-out on every clock-in.
func WithShiftScheduler(sch ShiftScheduler) ClockOption {
	return func(s *ClockService) { s.scheduler = sch }
}

// WithClock replaces time.Now. Tests only.
func WithClock(now func() time.Time) ClockOption {
	return func(s *ClockService) { s.now = now }
}

// NewClockService returns a ClockService backed by repo.
func NewClockService(repo repositories.EmployeeRepository, log logger.Logger, opts ...ClockOption) *ClockService {
	s := &ClockService{repo: repo, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	counter, err := otel.Meter("github.com/ghuser/bizdesk/services/employee").Int64Counter(
		"employee_clock_transitions_total",
		metric.WithDescription("Clock transitions attempted, by action and result."),
	)
	if err != nil {
		counter, _ = noop.NewMeterProvider().Meter("").Int64Counter("employee_clock_transitions_total")
	}
	s.transitions = counter
	return s
}

// ClockIn moves an employee from checked out to checked in.
func (s *ClockService) ClockIn(ctx context.Context, businessID uuid.UUID, employeeID string) (*models.ClockResult, error) {
	return s.Clock(ctx, models.ActionIn, businessID, employeeID)
}

// ClockOut moves an employee from checked in to checked out.
func (s *ClockService) ClockOut(ctx context.Context, businessID uuid.UUID, employeeID string) (*models.ClockResult, error) {
	return s.Clock(ctx, models.ActionOut, businessID, employeeID)
}

// Clock applies action to the employee and returns the kiosk confirmation.
//
// Errors: ErrInvalidClockAction, ErrEmployeeNotFound, ErrInvalidTransition,
// ErrStoreUnavailable.
func (s *ClockService) Clock(ctx context.Context, action models.ClockAction, businessID uuid.UUID, employeeID string) (*models.ClockResult, error) {
	if _, err := models.ParseClockAction(string(action)); err != nil {
		return nil, err
	}
	if employeeID == "" || businessID == uuid.Nil {
		s.record(ctx, action, "not_found")
		return nil, employeedomain.ErrEmployeeNotFound
	}

	at := s.timestamp()
	e, err := s.repo.ApplyClockTransition(ctx, models.ClockTransition{
		BusinessID: businessID,
		EmployeeID: employeeID,
		Action:     action,
		At:         at,
	})
	if err != nil {
		return nil, s.fail(ctx, action, businessID, employeeID, err)
	}
	s.record(ctx, action, "ok")

	s.log.InfoContext(ctx, "employee clocked",
		"business_id", businessID, "employee_id", employeeID, "action", action)

	res := e.Result(action)
	s.publishClocked(ctx, e, action, res.Timestamp)
	if action == models.ActionIn && s.scheduler != nil {
		if err := s.scheduler.ScheduleAutoClockOut(ctx, businessID, employeeID, res.Timestamp); err != nil {
			s.log.WarnContext(ctx, "schedule auto clock-out failed",
				"business_id", businessID, "employee_id", employeeID, "error", err)
		}
	}

	return res, nil
}

// CloseSession clocks an employee out only if they are still on the session
// that started at sessionStart. Returns ErrInvalidTransition when that session
// already ended.
func (s *ClockService) CloseSession(ctx context.Context, businessID uuid.UUID, employeeID string, sessionStart time.Time) (*models.ClockResult, error) {
	start := sessionStart.UTC()
	at := s.timestamp()
	e, err := s.repo.ApplyClockTransition(ctx, models.ClockTransition{
		BusinessID:   businessID,
		EmployeeID:   employeeID,
		Action:       models.ActionOut,
		At:           at,
		SessionStart: &start,
	})
	if err != nil {
		return nil, s.fail(ctx, models.ActionOut, businessID, employeeID, err)
	}
	s.record(ctx, models.ActionOut, "ok")

	s.log.InfoContext(ctx, "employee clocked out automatically",
		"business_id", businessID, "employee_id", employeeID, "session_start", start)

	res := e.Result(models.ActionOut)
	s.publishClocked(ctx, e, models.ActionOut, res.Timestamp)
	return res, nil
}

// ListClockable returns the kiosk view of every active employee of the business.
// Each call reads the store.
func (s *ClockService) ListClockable(ctx context.Context, businessID uuid.UUID) ([]models.EmployeeSummary, error) {
	employees, err := s.repo.ListActive(ctx, businessID)
	if err != nil {
		s.log.ErrorContext(ctx, "list clockable employees failed", "business_id", businessID, "error", err)
		return nil, fmt.Errorf("%w: %w", employeedomain.ErrStoreUnavailable, err)
	}
	out := make([]models.EmployeeSummary, 0, len(employees))
	for _, e := range employees {
		if !e.IsActive {
			continue
		}
		out = append(out, e.Summary())
	}
	return out, nil
}

func (s *ClockService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *ClockService) fail(ctx context.Context, action models.ClockAction, businessID uuid.UUID, employeeID string, err error) error {
	switch {
	case errors.Is(err, employeedomain.ErrEmployeeNotFound):
		s.record(ctx, action, "not_found")
		return err
	case errors.Is(err, employeedomain.ErrInvalidTransition):
		s.record(ctx, action, "invalid_transition")
		return err
	default:
		s.record(ctx, action, "store_error")
		s.log.ErrorContext(ctx, "clock transition failed",
			"business_id", businessID, "employee_id", employeeID, "action", action, "error", err)
		return fmt.Errorf("%w: %w", employeedomain.ErrStoreUnavailable, err)
	}
}

func (s *ClockService) record(ctx context.Context, action models.ClockAction, result string) {
	s.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", string(action)),
		attribute.String("result", result),
	))
}

// publishClocked runs after the transition is stored. A failed publish is
// logged; the presence board catches up on the next transition.
func (s *ClockService) publishClocked(ctx context.Context, e *models.Employee, action models.ClockAction, at time.Time) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(domainevents.EmployeeClockedEvent{
		EventID:            uuid.New(),
		Version:            1,
		BusinessID:         e.BusinessID,
		EmployeeID:         e.EmployeeID,
		Action:             string(action),
		CurrentlyCheckedIn: e.CurrentlyCheckedIn,
		OccurredAt:         at,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "marshal employee clocked event", "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(ctx, domainevents.TopicEmployeeClocked, msg); err != nil {
		s.log.WarnContext(ctx, "publish employee clocked event failed",
			"business_id", e.BusinessID, "employee_id", e.EmployeeID, "error", err)
	}
}

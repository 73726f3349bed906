package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/config"
	"github.com/ghuser/bizdesk/pkg/logger"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
	"github.com/ghuser/bizdesk/services/employee/infrastructure/persistence/memory"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	msgs   []*message.Message
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	for _, m := range msgs {
		p.topics = append(p.topics, topic)
		p.msgs = append(p.msgs, m)
	}
	return nil
}

type scheduledShift struct {
	businessID   uuid.UUID
	employeeID   string
	sessionStart time.Time
}

type recordingScheduler struct {
	mu    sync.Mutex
	calls []scheduledShift
	err   error
}

func (s *recordingScheduler) ScheduleAutoClockOut(_ context.Context, businessID uuid.UUID, employeeID string, sessionStart time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, scheduledShift{businessID, employeeID, sessionStart})
	return s.err
}

// seedEmployee stores an active, checked-out employee in repo.
func seedEmployee(t *testing.T, repo *memory.EmployeeRepository, businessID uuid.UUID, employeeID, name string) *models.Employee {
	t.Helper()
	e, err := models.NewEmployee(businessID, employeeID, models.NewEmployeeParams{Name: name, Position: "Barista"}, time.Now())
	if err != nil {
		t.Fatalf("NewEmployee: %v", err)
	}
	if err := repo.Save(context.Background(), e); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return e
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

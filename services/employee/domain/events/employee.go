package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicEmployeeClocked is published after every successful clock transition.
	TopicEmployeeClocked = "employee.clocked"

	// TopicEmployeeCreated is published when an employee is added to a business.
	TopicEmployeeCreated = "employee.created"
)

// EmployeeClockedEvent is published after a clock transition is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicEmployeeClocked).
type EmployeeClockedEvent struct {
	EventID            uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version            int       `json:"version"`  // Schema version; increment on breaking changes
	BusinessID         uuid.UUID `json:"business_id"`
	EmployeeID         string    `json:"employee_id"`
	Action             string    `json:"action"`
	CurrentlyCheckedIn bool      `json:"currently_checked_in"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// EmployeeCreatedEvent is published after a new employee is persisted.
type EmployeeCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	BusinessID uuid.UUID `json:"business_id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Package subscribers holds the employee context's event handlers run by the worker.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/logger"
	"github.com/ghuser/bizdesk/services/employee/domain/events"
)

// PresenceWriter is satisfied by *cache.PresenceBoard.
type PresenceWriter interface {
	Mark(ctx context.Context, businessID uuid.UUID, employeeID string, checkedIn bool) error
}

// PresenceProjector keeps the on-site board in step with employee.clocked events.
type PresenceProjector struct {
	board PresenceWriter
	log   logger.Logger
}

func NewPresenceProjector(board PresenceWriter, log logger.Logger) *PresenceProjector {
	return &PresenceProjector{board: board, log: log}
}

// Handle applies one employee.clocked message. Replays are harmless since
// Mark writes the state carried by the event rather than toggling it.
// Malformed payloads are logged and acked; retrying them cannot succeed.
func (p *PresenceProjector) Handle(ctx context.Context, msg *message.Message) error {
	var evt events.EmployeeClockedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		p.log.ErrorContext(ctx, "dropping malformed employee.clocked message",
			"message_uuid", msg.UUID, "error", err)
		return nil
	}
	if evt.BusinessID == uuid.Nil || evt.EmployeeID == "" {
		p.log.WarnContext(ctx, "dropping employee.clocked message without ids", "message_uuid", msg.UUID)
		return nil
	}

	if err := p.board.Mark(ctx, evt.BusinessID, evt.EmployeeID, evt.CurrentlyCheckedIn); err != nil {
		return fmt.Errorf("mark presence of %s: %w", evt.EmployeeID, err)
	}
	p.log.DebugContext(ctx, "presence updated",
		"business_id", evt.BusinessID,
		"employee_id", evt.EmployeeID,
		"on_site", evt.CurrentlyCheckedIn,
	)
	return nil
}

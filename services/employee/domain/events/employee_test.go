package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/services/employee/domain/events"
)

func TestEmployeeClockedEvent_JSONFieldNames(t *testing.T) {
	evt := events.EmployeeClockedEvent{
		EventID:            uuid.New(),
		Version:            1,
		BusinessID:         uuid.New(),
		EmployeeID:         "ACM001",
		Action:             "in",
		CurrentlyCheckedIn: true,
		OccurredAt:         time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "business_id", "employee_id", "action", "currently_checked_in", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopics(t *testing.T) {
	if events.TopicEmployeeClocked != "employee.clocked" {
		t.Errorf("unexpected clocked topic %q", events.TopicEmployeeClocked)
	}
	if events.TopicEmployeeCreated != "employee.created" {
		t.Errorf("unexpected created topic %q", events.TopicEmployeeCreated)
	}
}

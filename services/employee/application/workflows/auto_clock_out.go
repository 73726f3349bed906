// Package workflows holds the Temporal workflow that clocks out employees who
// forget to do it themselves.
package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

const (
	AutoClockOutWorkflowName = "AutoClockOutWorkflow"
	CloseSessionActivityName = "CloseSession"
)

// AutoClockOutInput starts one auto clock-out timer.
type AutoClockOutInput struct {
	BusinessID   uuid.UUID
	EmployeeID   string
	SessionStart time.Time
	MaxShift     time.Duration
}

// CloseSessionInput identifies the session to close.
type CloseSessionInput struct {
	BusinessID   uuid.UUID
	EmployeeID   string
	SessionStart time.Time
}

// CloseSessionResult reports whether the activity clocked the employee out.
// Closed is false when the employee had already clocked out.
type CloseSessionResult struct {
	Closed       bool
	ClockedOutAt time.Time
}

// WorkflowID is deterministic per session, so a repeated schedule for the same
// clock-in joins the running workflow. Session starts carry microsecond
// precision, and so does the id.
func WorkflowID(businessID uuid.UUID, employeeID string, sessionStart time.Time) string {
	return fmt.Sprintf("auto-clock-out:%s:%s:%d", businessID, employeeID, sessionStart.UnixMicro())
}

// AutoClockOutWorkflow waits for the maximum shift length, then closes the
// session if the employee is still on it.
func AutoClockOutWorkflow(ctx workflow.Context, in AutoClockOutInput) (CloseSessionResult, error) {
	if err := workflow.Sleep(ctx, in.MaxShift); err != nil {
		return CloseSessionResult{}, err
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	})

	var res CloseSessionResult
	err := workflow.ExecuteActivity(ctx, CloseSessionActivityName, CloseSessionInput{
		BusinessID:   in.BusinessID,
		EmployeeID:   in.EmployeeID,
		SessionStart: in.SessionStart,
	}).Get(ctx, &res)
	if err != nil {
		return CloseSessionResult{}, err
	}

	workflow.GetLogger(ctx).Info("auto clock-out finished",
		"employee_id", in.EmployeeID, "closed", res.Closed)
	return res, nil
}

// SessionCloser is satisfied by *services.ClockService.
type SessionCloser interface {
	CloseSession(ctx context.Context, businessID uuid.UUID, employeeID string, sessionStart time.Time) (*models.ClockResult, error)
}

// Activities are the activity implementations of the auto clock-out workflow.
type Activities struct {
	closer SessionCloser
}

func NewActivities(closer SessionCloser) *Activities {
	return &Activities{closer: closer}
}

// CloseSession clocks the employee out. A session that already ended, or an
// employee that no longer exists, is a successful no-op; store errors are retried.
func (a *Activities) CloseSession(ctx context.Context, in CloseSessionInput) (CloseSessionResult, error) {
	res, err := a.closer.CloseSession(ctx, in.BusinessID, in.EmployeeID, in.SessionStart)
	switch {
	case err == nil:
		return CloseSessionResult{Closed: true, ClockedOutAt: res.Timestamp}, nil
	case errors.Is(err, employeedomain.ErrInvalidTransition), errors.Is(err, employeedomain.ErrEmployeeNotFound):
		return CloseSessionResult{Closed: false}, nil
	default:
		return CloseSessionResult{}, err
	}
}

// Register adds the workflow and its activities to a Temporal worker.
func Register(w worker.Registry, closer SessionCloser) {
	w.RegisterWorkflowWithOptions(AutoClockOutWorkflow, workflow.RegisterOptions{Name: AutoClockOutWorkflowName})
	w.RegisterActivityWithOptions(NewActivities(closer).CloseSession, activity.RegisterOptions{Name: CloseSessionActivityName})
}

// WorkflowStarter is the subset of client.Client used by Scheduler.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// Scheduler starts auto clock-out workflows. It implements services.ShiftScheduler.
type Scheduler struct {
	starter   WorkflowStarter
	taskQueue string
	maxShift  time.Duration
}

func NewScheduler(starter WorkflowStarter, taskQueue string, maxShift time.Duration) *Scheduler {
	return &Scheduler{starter: starter, taskQueue: taskQueue, maxShift: maxShift}
}

// ScheduleAutoClockOut starts the timer for the session that opened at sessionStart.
func (s *Scheduler) ScheduleAutoClockOut(ctx context.Context, businessID uuid.UUID, employeeID string, sessionStart time.Time) error {
	_, err := s.starter.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        WorkflowID(businessID, employeeID, sessionStart),
		TaskQueue: s.taskQueue,
	}, AutoClockOutWorkflowName, AutoClockOutInput{
		BusinessID:   businessID,
		EmployeeID:   employeeID,
		SessionStart: sessionStart,
		MaxShift:     s.maxShift,
	})
	if err != nil {
		return fmt.Errorf("start auto clock-out workflow: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	domainevents "github.com/ghuser/bizdesk/services/employee/domain/events"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
	"github.com/ghuser/bizdesk/services/employee/infrastructure/persistence/memory"
)

// failingRepo returns err from every clock transition and listing.
type failingRepo struct {
	*memory.EmployeeRepository
	err error
}

func (r *failingRepo) ApplyClockTransition(context.Context, models.ClockTransition) (*models.Employee, error) {
	return nil, r.err
}

func (r *failingRepo) ListActive(context.Context, uuid.UUID) ([]*models.Employee, error) {
	return nil, r.err
}

func TestClockService_Scenario(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEmployeeRepository()
	biz := uuid.New()
	seedEmployee(t, repo, biz, "ACM001", "Dana Reyes")

	now := time.Date(2025, 3, 1, 9, 0, 0, 123456789, time.UTC)
	svc := NewClockService(repo, nopLogger(), WithClock(fixedClock(now)))

	in, err := svc.ClockIn(ctx, biz, "ACM001")
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	want := now.Truncate(time.Microsecond)
	if !in.Timestamp.Equal(want) {
		t.Errorf("timestamp: got %v, want %v", in.Timestamp, want)
	}
	if in.Name != "Dana Reyes" || in.Action != models.ActionIn || !in.CurrentlyCheckedIn {
		t.Errorf("unexpected clock-in result: %+v", in)
	}
	stored, _ := repo.GetActive(ctx, biz, "ACM001")
	if !stored.CurrentlyCheckedIn || !stored.LastCheckIn.Equal(want) {
		t.Errorf("stored after clock in: %+v", stored)
	}

	if _, err := svc.ClockIn(ctx, biz, "ACM001"); !errors.Is(err, employeedomain.ErrInvalidTransition) {
		t.Fatalf("second clock in: expected ErrInvalidTransition, got %v", err)
	}

	out, err := svc.ClockOut(ctx, biz, "ACM001")
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if out.CurrentlyCheckedIn || out.Action != models.ActionOut {
		t.Errorf("unexpected clock-out result: %+v", out)
	}
	stored, _ = repo.GetActive(ctx, biz, "ACM001")
	if stored.CurrentlyCheckedIn || !stored.LastCheckOut.Equal(want) {
		t.Errorf("stored after clock out: %+v", stored)
	}

	if _, err := svc.ClockOut(ctx, biz, "ACM001"); !errors.Is(err, employeedomain.ErrInvalidTransition) {
		t.Fatalf("second clock out: expected ErrInvalidTransition, got %v", err)
	}
}

func TestClockService_ClockInNeverPrecedesLastClockOut(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEmployeeRepository()
	biz := uuid.New()
	seedEmployee(t, repo, biz, "ACM001", "Dana Reyes")

	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := t0
	svc := NewClockService(repo, nopLogger(), WithClock(func() time.Time { return now }))

	if _, err := svc.ClockIn(ctx, biz, "ACM001"); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	now = t0.Add(8 * time.Hour)
	if _, err := svc.ClockOut(ctx, biz, "ACM001"); err != nil {
		t.Fatalf("clock out: %v", err)
	}

	// the server clock steps back two seconds
	now = t0.Add(8*time.Hour - 2*time.Second)
	in, err := svc.ClockIn(ctx, biz, "ACM001")
	if err != nil {
		t.Fatalf("second clock in: %v", err)
	}

	stored, _ := repo.GetActive(ctx, biz, "ACM001")
	if !stored.CurrentlyCheckedIn || stored.LastCheckIn.Before(*stored.LastCheckOut) {
		t.Fatalf("checked in with LastCheckIn %v before LastCheckOut %v", stored.LastCheckIn, stored.LastCheckOut)
	}
	if !in.Timestamp.Equal(*stored.LastCheckIn) {
		t.Errorf("result timestamp %v differs from stored %v", in.Timestamp, stored.LastCheckIn)
	}
}

func TestClockService_Errors(t *testing.T) {
	biz := uuid.New()
	storeErr := errors.New("connection refused")

	tests := []struct {
		name       string
		repo       func() *failingRepo
		action     models.ClockAction
		businessID uuid.UUID
		employeeID string
		wantErr    error
	}{
		{"unknown employee", nil, models.ActionIn, biz, "NOPE001", employeedomain.ErrEmployeeNotFound},
		{"blank employee id", nil, models.ActionIn, biz, "", employeedomain.ErrEmployeeNotFound},
		{"nil business", nil, models.ActionOut, uuid.Nil, "ACM001", employeedomain.ErrEmployeeNotFound},
		{"unknown action", nil, models.ClockAction("break"), biz, "ACM001", employeedomain.ErrInvalidClockAction},
		{
			name:       "store failure",
			repo:       func() *failingRepo { return &failingRepo{memory.NewEmployeeRepository(), storeErr} },
			action:     models.ActionIn,
			businessID: biz,
			employeeID: "ACM001",
			wantErr:    employeedomain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svc *ClockService
			if tt.repo != nil {
				svc = NewClockService(tt.repo(), nopLogger())
			} else {
				svc = NewClockService(memory.NewEmployeeRepository(), nopLogger())
			}
			_, err := svc.Clock(context.Background(), tt.action, tt.businessID, tt.employeeID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClockService_StoreErrorKeepsCause(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewClockService(&failingRepo{memory.NewEmployeeRepository(), storeErr}, nopLogger())

	_, err := svc.ClockIn(context.Background(), uuid.New(), "ACM001")
	if !errors.Is(err, storeErr) || !errors.Is(err, employeedomain.ErrStoreUnavailable) {
		t.Fatalf("expected both ErrStoreUnavailable and cause, got %v", err)
	}
}

func TestClockService_ConcurrentClockIn(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	biz := uuid.New()
	seedEmployee(t, repo, biz, "ACM001", "Dana")
	svc := NewClockService(repo, nopLogger())

	const callers = 2
	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.ClockIn(context.Background(), biz, "ACM001")
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, employeedomain.ErrInvalidTransition):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if succeeded.Load() != 1 || rejected.Load() != callers-1 {
		t.Fatalf("succeeded=%d rejected=%d, want exactly one success", succeeded.Load(), rejected.Load())
	}
}

func TestClockService_PublishesAndSchedules(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEmployeeRepository()
	biz := uuid.New()
	seedEmployee(t, repo, biz, "ACM001", "Dana")

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	pub := &recordingPublisher{}
	sched := &recordingScheduler{}
	svc := NewClockService(repo, nopLogger(), WithClock(fixedClock(now)), WithPublisher(pub), WithShiftScheduler(sched))

	if _, err := svc.ClockIn(ctx, biz, "ACM001"); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if _, err := svc.ClockOut(ctx, biz, "ACM001"); err != nil {
		t.Fatalf("clock out: %v", err)
	}
	_, _ = svc.ClockOut(ctx, biz, "ACM001") // rejected, publishes nothing

	if len(pub.msgs) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(pub.msgs))
	}
	for _, topic := range pub.topics {
		if topic != domainevents.TopicEmployeeClocked {
			t.Errorf("unexpected topic %q", topic)
		}
	}
	var evt domainevents.EmployeeClockedEvent
	if err := json.Unmarshal(pub.msgs[0].Payload, &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if evt.BusinessID != biz || evt.EmployeeID != "ACM001" || evt.Action != "in" || !evt.CurrentlyCheckedIn || !evt.OccurredAt.Equal(now) {
		t.Errorf("unexpected event: %+v", evt)
	}

	if len(sched.calls) != 1 {
		t.Fatalf("expected one auto clock-out schedule, got %d", len(sched.calls))
	}
	if sched.calls[0].employeeID != "ACM001" || !sched.calls[0].sessionStart.Equal(now) {
		t.Errorf("unexpected schedule: %+v", sched.calls[0])
	}
}

func TestClockService_SideEffectFailuresDoNotFailClock(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	biz := uuid.New()
	seedEmployee(t, repo, biz, "ACM001", "Dana")
	svc := NewClockService(repo, nopLogger(),
		WithPublisher(&recordingPublisher{err: errors.New("bus down")}),
		WithShiftScheduler(&recordingScheduler{err: errors.New("temporal down")}),
	)

	res, err := svc.ClockIn(context.Background(), biz, "ACM001")
	if err != nil {
		t.Fatalf("expected success despite side-effect failures, got %v", err)
	}
	if !res.CurrentlyCheckedIn {
		t.Fatal("expected employee checked in")
	}
}

func TestClockService_CloseSession(t *testing.T) {
	ctx := context.Background()
	biz := uuid.New()
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("open session is closed", func(t *testing.T) {
		repo := memory.NewEmployeeRepository()
		seedEmployee(t, repo, biz, "ACM001", "Dana")
		svc := NewClockService(repo, nopLogger(), WithClock(fixedClock(start)))
		if _, err := svc.ClockIn(ctx, biz, "ACM001"); err != nil {
			t.Fatalf("clock in: %v", err)
		}

		svc.now = fixedClock(start.Add(16 * time.Hour))
		res, err := svc.CloseSession(ctx, biz, "ACM001", start)
		if err != nil {
			t.Fatalf("CloseSession: %v", err)
		}
		if res.CurrentlyCheckedIn || !res.Timestamp.Equal(start.Add(16*time.Hour)) {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("newer session is left alone", func(t *testing.T) {
		repo := memory.NewEmployeeRepository()
		seedEmployee(t, repo, biz, "ACM001", "Dana")
		svc := NewClockService(repo, nopLogger(), WithClock(fixedClock(start)))
		_, _ = svc.ClockIn(ctx, biz, "ACM001")
		svc.now = fixedClock(start.Add(time.Hour))
		_, _ = svc.ClockOut(ctx, biz, "ACM001")
		svc.now = fixedClock(start.Add(2 * time.Hour))
		_, _ = svc.ClockIn(ctx, biz, "ACM001")

		svc.now = fixedClock(start.Add(16 * time.Hour))
		if _, err := svc.CloseSession(ctx, biz, "ACM001", start); !errors.Is(err, employeedomain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		stored, _ := repo.GetActive(ctx, biz, "ACM001")
		if !stored.CurrentlyCheckedIn {
			t.Fatal("employee on a newer session must stay checked in")
		}
	})
}

func TestClockService_ListClockable(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEmployeeRepository()
	biz := uuid.New()
	seedEmployee(t, repo, biz, "ACM001", "Ana")
	seedEmployee(t, repo, biz, "ACM002", "Ben")
	seedEmployee(t, repo, uuid.New(), "OTH001", "Other")
	repo.Deactivate(biz, "ACM002")
	svc := NewClockService(repo, nopLogger())

	got, err := svc.ListClockable(ctx, biz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].EmployeeID != "ACM001" || got[0].Position != "Barista" {
		t.Fatalf("unexpected summaries: %+v", got)
	}

	_, _ = svc.ClockIn(ctx, biz, "ACM001")
	again, _ := svc.ListClockable(ctx, biz)
	if !again[0].CurrentlyCheckedIn {
		t.Fatal("a fresh call must reflect the current state")
	}

	failing := NewClockService(&failingRepo{memory.NewEmployeeRepository(), errors.New("timeout")}, nopLogger())
	if _, err := failing.ListClockable(ctx, biz); !errors.Is(err, employeedomain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

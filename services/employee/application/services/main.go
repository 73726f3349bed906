package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/app"
	"github.com/ghuser/bizdesk/services/employee/application/workflows"
	"github.com/ghuser/bizdesk/services/employee/domain/repositories"
	"github.com/ghuser/bizdesk/services/employee/infrastructure/persistence/memory"
	"github.com/ghuser/bizdesk/services/employee/infrastructure/persistence/postgres"
)

// PresenceReader is satisfied by *cache.PresenceBoard.
type PresenceReader interface {
	OnSite(ctx context.Context, businessID uuid.UUID) ([]string, error)
}

// Services is the application-layer service container for the employee context.
type Services struct {
	Clock    *ClockService
	Employee *EmployeeService
	Presence PresenceReader // nil when Redis is not configured
}

// New wires the employee services with the infrastructure in a.
// Without a database the process runs on the in-memory store.
func New(a *app.Application) *Services {
	employees, businesses, tx := stores(a)

	var publisher Publisher
	if a.EventBus != nil {
		publisher = a.EventBus
	}

	var clockOpts []ClockOption
	if publisher != nil {
		clockOpts = append(clockOpts, WithPublisher(publisher))
	}
	if a.TemporalClient != nil && a.Config != nil {
		clockOpts = append(clockOpts, WithShiftScheduler(workflows.NewScheduler(
			a.TemporalClient.Client, a.Config.TemporalTaskQueue, a.Config.MaxShiftDuration,
		)))
	}

	svcs := &Services{
		Clock:    NewClockService(employees, a.Logger, clockOpts...),
		Employee: NewEmployeeService(employees, businesses, tx, publisher, a.Logger),
	}
	if a.Presence != nil {
		svcs.Presence = a.Presence
	}
	return svcs
}

func stores(a *app.Application) (repositories.EmployeeRepository, repositories.BusinessRepository, repositories.Transactor) {
	if a.Db == nil {
		a.Logger.Warn("employee store running in memory", "demo_business_id", memory.DemoBusinessID)
		return memory.NewEmployeeRepository(), memory.NewDemoBusinessRepository(), &memory.Transactor{}
	}
	pool := a.Db.Pool()
	return postgres.NewEmployeeRepository(pool), postgres.NewBusinessRepository(pool), a.Tx
}

package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/bizdesk/pkg/cache"
	"github.com/ghuser/bizdesk/pkg/config"
	"github.com/ghuser/bizdesk/pkg/database"
	"github.com/ghuser/bizdesk/pkg/events"
	"github.com/ghuser/bizdesk/pkg/logger"
	"github.com/ghuser/bizdesk/pkg/workflows"
)

// Application holds the shared infrastructure handed to every bounded
// context's route and service constructors. It is built once in cmd/.
//
// Optional members are nil when their backend is not configured:
//   - Db and Tx are nil with STORE_DRIVER=memory
//   - TemporalClient is nil unless TEMPORAL_ENABLED=true
//   - SessionStore is nil in the worker process
//
// Log with the context methods inside request and message handlers so the
// trace and request ids are attached:
//
//	a.Logger.InfoContext(ctx, "employee clocked", "employee_id", id)
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Tx             *database.TransactionManager
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	Presence       *cache.PresenceBoard
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store
}

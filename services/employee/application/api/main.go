package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/bizdesk/pkg/app"
	"github.com/ghuser/bizdesk/pkg/auth"
	"github.com/ghuser/bizdesk/services/employee/application/handlers"
	appsvcs "github.com/ghuser/bizdesk/services/employee/application/services"
)

// EmployeeRoutes registers the employee and time-clock endpoints on r.
func EmployeeRoutes(r chi.Router, a *app.Application) {
	Mount(r, a, appsvcs.New(a))
}

// Mount registers the routes against an already wired service container.
// Kiosk routes are public; creating employees needs a business session.
func Mount(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/clock-in/{businessId}", handlers.NewGetClockableHandler(svcs).Execute)
		r.Post("/clock/{action}/{employeeId}", handlers.NewPostClockHandler(svcs).Execute)
		r.Get("/limit/{businessId}", handlers.NewGetEmployeeLimitHandler(svcs).Execute)
		r.Get("/on-site/{businessId}", handlers.NewGetOnSiteHandler(svcs, a.Logger).Execute)

		if a.SessionStore == nil {
			a.Logger.Warn("no session store; POST /employees disabled")
			return
		}
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
			r.Post("/", handlers.NewPostEmployeeHandler(svcs).Execute)
		})
	})
}

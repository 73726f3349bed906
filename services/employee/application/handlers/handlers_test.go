package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/bizdesk/pkg/auth"
	"github.com/ghuser/bizdesk/pkg/config"
	"github.com/ghuser/bizdesk/pkg/logger"
	appsvcs "github.com/ghuser/bizdesk/services/employee/application/services"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
	"github.com/ghuser/bizdesk/services/employee/infrastructure/persistence/memory"
)

type stubPresence struct {
	ids []string
	err error
}

func (s *stubPresence) OnSite(context.Context, uuid.UUID) ([]string, error) {
	return s.ids, s.err
}

type fixture struct {
	router   http.Handler
	business *models.Business
	repo     *memory.EmployeeRepository
	svcs     *appsvcs.Services
}

func newFixture(t *testing.T, plan models.Plan) *fixture {
	t.Helper()
	log := logger.New(&config.Config{LogLevel: "error"})
	b, err := models.NewBusiness(uuid.New(), "Acme Diner", models.IndustryRestaurant, plan)
	if err != nil {
		t.Fatalf("NewBusiness: %v", err)
	}
	repo := memory.NewEmployeeRepository()
	svcs := &appsvcs.Services{
		Clock:    appsvcs.NewClockService(repo, log),
		Employee: appsvcs.NewEmployeeService(repo, memory.NewBusinessRepository(b), &memory.Transactor{}, nil, log),
	}

	r := chi.NewRouter()
	r.Get("/employees/clock-in/{businessId}", NewGetClockableHandler(svcs).Execute)
	r.Post("/employees/clock/{action}/{employeeId}", NewPostClockHandler(svcs).Execute)
	r.Get("/employees/limit/{businessId}", NewGetEmployeeLimitHandler(svcs).Execute)
	r.Get("/employees/on-site/{businessId}", NewGetOnSiteHandler(svcs, log).Execute)
	r.Post("/employees", NewPostEmployeeHandler(svcs).Execute)

	return &fixture{router: r, business: b, repo: repo, svcs: svcs}
}

func (f *fixture) seed(t *testing.T, employeeID, name string) {
	t.Helper()
	e, err := models.NewEmployee(f.business.ID, employeeID, models.NewEmployeeParams{Name: name, Position: "Cook"}, time.Now())
	if err != nil {
		t.Fatalf("NewEmployee: %v", err)
	}
	if err := f.repo.Save(context.Background(), e); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func (f *fixture) do(t *testing.T, method, path, body string, ctx context.Context) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if ctx != nil {
		r = r.WithContext(ctx)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestGetClockable(t *testing.T) {
	f := newFixture(t, models.PlanBasic)
	f.seed(t, "ACM001", "Ana")
	f.seed(t, "ACM002", "Ben")
	f.repo.Deactivate(f.business.ID, "ACM002")

	w := f.do(t, http.MethodGet, "/employees/clock-in/"+f.business.ID.String(), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	got := decode[[]map[string]any](t, w)
	if len(got) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(got))
	}
	if got[0]["employeeId"] != "ACM001" || got[0]["name"] != "Ana" || got[0]["position"] != "Cook" || got[0]["currentlyCheckedIn"] != false {
		t.Errorf("unexpected summary: %v", got[0])
	}

	if w := f.do(t, http.MethodGet, "/employees/clock-in/not-a-uuid", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed business id, got %d", w.Code)
	}

	empty := f.do(t, http.MethodGet, "/employees/clock-in/"+uuid.NewString(), "", nil)
	if empty.Code != http.StatusOK || strings.TrimSpace(empty.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %d %s", empty.Code, empty.Body)
	}
}

func TestPostClock_Scenario(t *testing.T) {
	f := newFixture(t, models.PlanBasic)
	f.seed(t, "ACM001", "Dana Reyes")
	body := `{"businessId":"` + f.business.ID.String() + `"}`

	w := f.do(t, http.MethodPost, "/employees/clock/in/ACM001", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clock in: expected 200, got %d: %s", w.Code, w.Body)
	}
	resp := decode[ClockResponse](t, w)
	if resp.Message != "Successfully clocked in" {
		t.Errorf("message: got %q", resp.Message)
	}
	if resp.Employee.Name != "Dana Reyes" || resp.Employee.EmployeeID != "ACM001" || resp.Employee.Action != "in" || !resp.Employee.CurrentlyCheckedIn {
		t.Errorf("unexpected employee: %+v", resp.Employee)
	}
	if time.Since(resp.Employee.Timestamp) > time.Minute {
		t.Errorf("timestamp not server time: %v", resp.Employee.Timestamp)
	}

	again := f.do(t, http.MethodPost, "/employees/clock/in/ACM001", body, nil)
	if again.Code != http.StatusBadRequest {
		t.Fatalf("second clock in: expected 400, got %d", again.Code)
	}
	if msg := decode[ErrorResponse](t, again).Error; !strings.Contains(msg, "already clocked in") {
		t.Errorf("error message: got %q", msg)
	}

	out := f.do(t, http.MethodPost, "/employees/clock/out/ACM001", body, nil)
	if out.Code != http.StatusOK {
		t.Fatalf("clock out: expected 200, got %d", out.Code)
	}
	if resp := decode[ClockResponse](t, out); resp.Message != "Successfully clocked out" || resp.Employee.CurrentlyCheckedIn {
		t.Errorf("unexpected clock-out response: %+v", resp)
	}
}

func TestPostClock_Errors(t *testing.T) {
	f := newFixture(t, models.PlanBasic)
	f.seed(t, "ACM001", "Dana")
	valid := `{"businessId":"` + f.business.ID.String() + `"}`

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"unknown employee", "/employees/clock/in/ACM999", valid, http.StatusNotFound},
		{"other business", "/employees/clock/in/ACM001", `{"businessId":"` + uuid.NewString() + `"}`, http.StatusNotFound},
		{"clock out while out", "/employees/clock/out/ACM001", valid, http.StatusBadRequest},
		{"unknown action", "/employees/clock/break/ACM001", valid, http.StatusBadRequest},
		{"missing business", "/employees/clock/in/ACM001", `{}`, http.StatusUnprocessableEntity},
		{"malformed business", "/employees/clock/in/ACM001", `{"businessId":"acme"}`, http.StatusUnprocessableEntity},
		{"invalid json", "/employees/clock/in/ACM001", `{"businessId":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, tt.path, tt.body, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body)
			}
		})
	}
}

func TestGetEmployeeLimit(t *testing.T) {
	f := newFixture(t, models.PlanFree)
	f.seed(t, "ACM001", "Ana")
	f.seed(t, "ACM002", "Ben")

	w := f.do(t, http.MethodGet, "/employees/limit/"+f.business.ID.String(), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	got := decode[EmployeeLimitResponse](t, w)
	if got.Plan != "free" || got.ActiveEmployees != 2 || got.EmployeeLimit != 5 || got.Remaining != 3 || !got.CanAddEmployee {
		t.Errorf("unexpected limit: %+v", got)
	}

	if w := f.do(t, http.MethodGet, "/employees/limit/"+uuid.NewString(), "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown business, got %d", w.Code)
	}
}

func TestPostEmployee(t *testing.T) {
	f := newFixture(t, models.PlanFree)
	authed := auth.WithBusinessID(context.Background(), f.business.ID)

	w := f.do(t, http.MethodPost, "/employees", `{"name":"Dana Reyes","position":"Barista","email":"dana@example.com"}`, authed)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
	}
	created := decode[EmployeeResponse](t, w)
	if created.EmployeeID != "ACM001" || created.BusinessID != f.business.ID || !created.IsActive || created.CurrentlyCheckedIn {
		t.Errorf("unexpected employee: %+v", created)
	}

	if w := f.do(t, http.MethodPost, "/employees", `{"name":"Dana"}`, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
	if w := f.do(t, http.MethodPost, "/employees", `{"name":"Dana","email":"nope"}`, authed); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid email, got %d", w.Code)
	}

	for i := 0; i < 4; i++ {
		if w := f.do(t, http.MethodPost, "/employees", `{"name":"Worker"}`, authed); w.Code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i+2, w.Code)
		}
	}
	if w := f.do(t, http.MethodPost, "/employees", `{"name":"One Too Many"}`, authed); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 at the plan limit, got %d", w.Code)
	}
}

func TestGetOnSite(t *testing.T) {
	f := newFixture(t, models.PlanFree)
	path := "/employees/on-site/" + f.business.ID.String()

	if w := f.do(t, http.MethodGet, path, "", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without presence board, got %d", w.Code)
	}

	f.svcs.Presence = &stubPresence{ids: []string{"ACM001", "ACM003"}}
	w := f.do(t, http.MethodGet, path, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := decode[OnSiteResponse](t, w)
	if got.BusinessID != f.business.ID || len(got.EmployeeIDs) != 2 || got.EmployeeIDs[0] != "ACM001" {
		t.Errorf("unexpected response: %+v", got)
	}

	f.svcs.Presence = &stubPresence{err: errors.New("redis: connection pool timeout")}
	w = f.do(t, http.MethodGet, path, "", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if msg := decode[ErrorResponse](t, w).Error; strings.Contains(msg, "redis") {
		t.Errorf("internal error leaked: %q", msg)
	}
}

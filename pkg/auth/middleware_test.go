package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/bizdesk/pkg/config"
	"github.com/ghuser/bizdesk/pkg/logger"
)

// newTestStore returns a cookie store; RequireAuth only needs sessions.Store.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

func newTestLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// requestWithValues returns a request carrying a session cookie with the given values.
func requestWithValues(t *testing.T, store sessions.Store, values map[any]any) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/employees", nil)

	session, err := store.Get(r, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	for k, v := range values {
		session.Values[k] = v
	}
	if err := session.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/employees", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := newTestStore()
	businessID := uuid.New()

	w := httptest.NewRecorder()
	if err := StartSession(w, httptest.NewRequest(http.MethodPost, "/login", nil), store, businessID); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/employees", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	var got uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = BusinessIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	RequireAuth(store, newTestLogger())(next).ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != businessID {
		t.Fatalf("expected business %v in context, got %v", businessID, got)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	store := newTestStore()

	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"missing cookie", func(*testing.T) *http.Request {
			return httptest.NewRequest(http.MethodPost, "/api/employees", nil)
		}},
		{"session without business", func(t *testing.T) *http.Request {
			return requestWithValues(t, store, map[any]any{"user": "dana"})
		}},
		{"malformed business id", func(t *testing.T) *http.Request {
			return requestWithValues(t, store, map[any]any{sessionBusinessIDKey: "not-a-valid-uuid"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler should not be called")
			})
			w := httptest.NewRecorder()
			RequireAuth(store, newTestLogger())(next).ServeHTTP(w, tt.req(t))

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

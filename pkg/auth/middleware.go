package auth

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/bizdesk/pkg/httpx"
	"github.com/ghuser/bizdesk/pkg/logger"
)

const (
	sessionName          = "bizdesk_session"
	sessionBusinessIDKey = "business_id"
)

// RequireAuth rejects requests without a session bound to a business and puts
// the business id on the request context for BusinessIDFromCtx.
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			raw, ok := session.Values[sessionBusinessIDKey].(string)
			if !ok || raw == "" {
				log.WarnContext(r.Context(), "session missing business_id")
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			businessID, err := uuid.Parse(raw)
			if err != nil {
				log.WarnContext(r.Context(), "invalid business_id in session", "business_id", raw, "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "invalid session data")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithBusinessID(r.Context(), businessID)))
		})
	}
}

// StartSession binds the caller's session to businessID and writes the cookie.
func StartSession(w http.ResponseWriter, r *http.Request, store sessions.Store, businessID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Values[sessionBusinessIDKey] = businessID.String()
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

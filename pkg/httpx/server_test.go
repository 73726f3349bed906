package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/bizdesk/pkg/httpx"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter(cfg httpx.ServerConfig) http.Handler {
	r := httpx.NewRouter(cfg, passThrough, passThrough, passThrough, passThrough)
	r.Get("/api/employees/clock-in/{businessId}", okHandler)
	r.Post("/api/employees/clock/{action}/{employeeId}", func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestSecurityHeaders(t *testing.T) {
	h := httpx.SecurityHeaders(false)(http.HandlerFunc(okHandler))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	checks := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'self'",
	}
	for header, expected := range checks {
		if got := rr.Header().Get(header); got != expected {
			t.Errorf("%s: got %q, want %q", header, got, expected)
		}
	}
	// unrolled/secure omits HSTS on plain HTTP.
	if got := rr.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("expected no HSTS over HTTP, got %q", got)
	}
}

func TestNewRouter_SetsRequestIDAndSecurityHeaders(t *testing.T) {
	r := newTestRouter(httpx.ServerConfig{CORSAllowedOrigins: "*"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/employees/clock-in/abc", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected security headers on routed responses")
	}
}

func TestNewRouter_RateLimitsPerIP(t *testing.T) {
	r := newTestRouter(httpx.ServerConfig{RequestsPerMinute: 2})

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/employees/clock-in/abc", http.NoBody)
		req.RemoteAddr = "203.0.113.7:4000"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence: %v", codes)
	}
}

func TestNewRouter_BodyLimit(t *testing.T) {
	r := newTestRouter(httpx.ServerConfig{BodyLimit: 10})
	rr := httptest.NewRecorder()
	body := strings.NewReader(strings.Repeat("x", 64))
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/employees/clock/in/ACM001", body))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	tests := []struct {
		name       string
		allowed    string
		origin     string
		wantOrigin string
		wantCreds  string
	}{
		{"explicit origin", "https://kiosk.example.com", "https://kiosk.example.com", "https://kiosk.example.com", "true"},
		{"unlisted origin", "https://kiosk.example.com", "https://evil.example.com", "", ""},
		{"wildcard", "*", "https://any.example.com", "*", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := httpx.CORSMiddleware(tt.allowed)(http.HandlerFunc(okHandler))
			req := httptest.NewRequest(http.MethodOptions, "/api/employees/clock/in/ACM001", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin: got %q, want %q", got, tt.wantOrigin)
			}
			if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("Allow-Credentials: got %q, want %q", got, tt.wantCreds)
			}
		})
	}
}

func TestRequestBodyLimit_WithinLimit(t *testing.T) {
	const limit = 100

	var gotBody []byte
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, limit+1)
		n, _ := r.Body.Read(buf)
		gotBody = buf[:n]
		w.WriteHeader(http.StatusOK)
	})

	h := httpx.RequestBodyLimit(limit)(inner)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 50))))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(gotBody) != 50 {
		t.Fatalf("expected 50 bytes read, got %d", len(gotBody))
	}
}

func TestNewServer_Timeouts(t *testing.T) {
	srv := httpx.NewServer(":8080", http.NotFoundHandler())
	if srv.Addr != ":8080" || srv.ReadHeaderTimeout == 0 || srv.WriteTimeout <= srv.ReadTimeout {
		t.Errorf("unexpected server settings: %+v", srv)
	}
}

package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "releves/internal/platform/errors"
	pnet "releves/internal/platform/net"
)

func tokenPort(t *testing.T, want string) *Port {
	t.Helper()
	return NewPortFunc(func(raw string) (string, error) {
		if raw != want {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
		return "agent-1", nil
	})
}

func TestAuth_NilPortPassesThrough(t *testing.T) {
	called := false
	h := Auth(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/releves", nil))

	if !called {
		t.Fatal("next handler not reached without a port")
	}
}

func TestAuth_MissingBearerRejected(t *testing.T) {
	h := Auth(tokenPort(t, "secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/releves", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_BadTokenRejected(t *testing.T) {
	h := Auth(tokenPort(t, "secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest("GET", "/releves", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_ValidBearerAnnotatesAgent(t *testing.T) {
	var gotAgent string
	h := Auth(tokenPort(t, "secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = pnet.AgentID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/releves", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotAgent != "agent-1" {
		t.Fatalf("agent id = %q, want agent-1", gotAgent)
	}
}

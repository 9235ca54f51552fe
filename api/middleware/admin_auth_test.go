package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cometcontrol/comet-backend/pkg/auth"
	"github.com/cometcontrol/comet-backend/pkg/config"
)

func adminTestConfig() config.AdminConfig {
	return config.AdminConfig{
		Password:      "secret",
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
	}
}

func protectedHandler(t *testing.T, cfg config.AdminConfig) (http.Handler, *bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	return AdminAuth(cfg, nil)(next), &reached
}

func TestAdminAuthMissingCookie(t *testing.T) {
	handler, reached := protectedHandler(t, adminTestConfig())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/products", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if *reached {
		t.Fatal("handler must not run without a session")
	}
}

func TestAdminAuthInvalidToken(t *testing.T) {
	handler, reached := protectedHandler(t, adminTestConfig())

	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if *reached {
		t.Fatal("handler must not run with a bad session")
	}
}

func TestAdminAuthValidToken(t *testing.T) {
	cfg := adminTestConfig()
	handler, reached := protectedHandler(t, cfg)

	token, err := auth.MintAdminSession(cfg, time.Now())
	if err != nil {
		t.Fatalf("MintAdminSession: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !*reached {
		t.Fatal("handler should run with a valid session")
	}
}

func TestAdminAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	other := adminTestConfig()
	other.SessionSecret = "different-secret"
	token, err := auth.MintAdminSession(other, time.Now())
	if err != nil {
		t.Fatalf("MintAdminSession: %v", err)
	}

	handler, _ := protectedHandler(t, adminTestConfig())
	req := httptest.NewRequest("GET", "/api/admin/products", nil)
	req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cometcontrol/comet-backend/api/middleware"
	"github.com/cometcontrol/comet-backend/internal/catalog"
	"github.com/cometcontrol/comet-backend/internal/mailer"
	"github.com/cometcontrol/comet-backend/internal/ratelimit"
	"github.com/cometcontrol/comet-backend/internal/submissions"
	"github.com/cometcontrol/comet-backend/pkg/auth"
	"github.com/cometcontrol/comet-backend/pkg/config"
	"github.com/cometcontrol/comet-backend/pkg/logger"
	"github.com/cometcontrol/comet-backend/pkg/sendgrid"
)

type recordingProvider struct {
	sent []sendgrid.Message
}

func (p *recordingProvider) Send(_ context.Context, msg sendgrid.Message) error {
	p.sent = append(p.sent, msg)
	return nil
}

type testStack struct {
	handler  http.Handler
	provider *recordingProvider
	cfg      *config.Config
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev},
		RateLimit: config.RateLimitConfig{
			AuthWindow:    15 * time.Minute,
			AuthLimit:     5,
			ContactWindow: time.Hour,
			ContactLimit:  3,
			QuoteWindow:   time.Hour,
			QuoteLimit:    3,
		},
		Sendgrid: config.SendgridConfig{
			APIKey:       "SG.test",
			FromEmail:    "Comet Control <noreply@cometcontrol.com>",
			ContactEmail: "sales@cometcontrol.com",
		},
		Admin: config.AdminConfig{
			Password:      "hunter2",
			SessionSecret: "router-test-secret",
			SessionTTL:    time.Hour,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	provider := &recordingProvider{}
	dispatcher, err := mailer.NewService(provider, cfg.Sendgrid, logg, nil)
	if err != nil {
		t.Fatalf("mailer.NewService: %v", err)
	}

	limiter := ratelimit.NewLimiter()
	submissionSvc, err := submissions.NewService(
		limiter,
		ratelimit.NewPolicy(submissions.ActionContact, cfg.RateLimit.ContactLimit, cfg.RateLimit.ContactWindow),
		ratelimit.NewPolicy(submissions.ActionQuote, cfg.RateLimit.QuoteLimit, cfg.RateLimit.QuoteWindow),
		dispatcher,
		logg,
		nil,
	)
	if err != nil {
		t.Fatalf("submissions.NewService: %v", err)
	}

	repo, err := catalog.NewRepository(filepath.Join(t.TempDir(), "products.json"))
	if err != nil {
		t.Fatalf("catalog.NewRepository: %v", err)
	}
	catalogSvc, err := catalog.NewService(repo, logg)
	if err != nil {
		t.Fatalf("catalog.NewService: %v", err)
	}

	handler := NewRouter(Deps{
		Config:      cfg,
		Logger:      logg,
		Limiter:     limiter,
		AuthPolicy:  ratelimit.NewPolicy("auth", cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow),
		Submissions: submissionSvc,
		Catalog:     catalogSvc,
		CatalogPing: repo,
	})

	return &testStack{handler: handler, provider: provider, cfg: cfg}
}

func (s *testStack) post(t *testing.T, path, body, ip string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Real-IP", ip)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

const contactBody = `{"name":"Ada","email":"ada@x.com","subject":"Inquiry","message":"Need pricing for SD100"}`

func TestContactEndToEnd(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.post(t, "/contact", contactBody, "203.0.113.9")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var ack map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if !ack["success"] {
		t.Fatalf("expected success ack, got %s", rec.Body.String())
	}

	if len(stack.provider.sent) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(stack.provider.sent))
	}
	if got := stack.provider.sent[0].Subject; got != "[Contact Form] Inquiry" {
		t.Fatalf("unexpected subject %q", got)
	}
}

func TestContactMalformedBodyDoesNotChargeLimiter(t *testing.T) {
	stack := newTestStack(t)

	for i := 0; i < 10; i++ {
		rec := stack.post(t, "/contact", "{broken", "203.0.113.9")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
		}
	}

	// Window untouched: a valid submission still goes through.
	rec := stack.post(t, "/contact", contactBody, "203.0.113.9")
	if rec.Code != http.StatusOK {
		t.Fatalf("malformed bodies must not charge the limiter, got %d", rec.Code)
	}
}

func TestContactRateLimitSetsRetryAfter(t *testing.T) {
	stack := newTestStack(t)

	for i := 0; i < 3; i++ {
		if rec := stack.post(t, "/contact", contactBody, "203.0.113.9"); rec.Code != http.StatusOK {
			t.Fatalf("submission %d: %d", i+1, rec.Code)
		}
	}

	rec := stack.post(t, "/contact", contactBody, "203.0.113.9")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on 429")
	}
}

func TestQuoteEmptyItemsReturns422(t *testing.T) {
	stack := newTestStack(t)

	body := `{"contact":{"companyName":"Acme HVAC","contactPerson":"Ada Lovelace","email":"ada@acme.example","phone":"5550101","projectDescription":"Retrofit of three sites","preferredContactMethod":"email"},"items":[]}`
	rec := stack.post(t, "/quote", body, "203.0.113.9")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %q", resp.Error.Code)
	}
	if _, ok := resp.Error.Details["items"]; !ok {
		t.Fatalf("expected items field detail, got %v", resp.Error.Details)
	}
}

func TestQuoteEndToEndLineTotals(t *testing.T) {
	stack := newTestStack(t)

	body := `{"contact":{"companyName":"Acme HVAC","contactPerson":"Ada Lovelace","email":"ada@acme.example","phone":"5550101","projectDescription":"Retrofit of three sites","preferredContactMethod":"email"},"items":[{"productId":"p1","productSku":"CMT-4000","productName":{"tr":"Termostat","en":"Thermostat"},"quantity":2,"notes":"","unitPrice":{"amount":100,"currency":"USD"}},{"productId":"p2","productSku":"CMT-GW","productName":{"tr":"Aginet","en":"Gateway"},"quantity":1,"notes":""}]}`
	rec := stack.post(t, "/quote", body, "203.0.113.9")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(stack.provider.sent) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(stack.provider.sent))
	}
	msg := stack.provider.sent[0]
	if msg.Subject != "[Quote Request] Acme HVAC - 2 Product(s)" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "$200.00") {
		t.Fatal("expected $200.00 line total")
	}
	if !strings.Contains(msg.HTML, "—") {
		t.Fatal("expected placeholder dash for unpriced item")
	}
}

func TestAdminFlowLoginThenCreateProduct(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.post(t, "/api/admin/auth", `{"password":"hunter2"}`, "203.0.113.9")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var session string
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AdminSessionCookie {
			session = c.Value
		}
	}
	if session == "" {
		t.Fatal("expected session cookie on login")
	}
	if _, err := auth.ParseAdminSession(stack.cfg.Admin, session); err != nil {
		t.Fatalf("session cookie should parse: %v", err)
	}

	product := `{"slug":"cmt-4000","sku":"CMT-4000","category":"hvac","name":{"tr":"Termostat","en":"Thermostat"},"shortDescription":{"tr":"Kisa","en":"Short"},"longDescription":{"tr":"Uzun aciklama","en":"Long description"}}`
	req := httptest.NewRequest("POST", "/api/admin/products", strings.NewReader(product))
	req.AddCookie(&http.Cookie{Name: middleware.AdminSessionCookie, Value: session})
	createRec := httptest.NewRecorder()
	stack.handler.ServeHTTP(createRec, req)

	if createRec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", createRec.Code, createRec.Body.String())
	}

	// Without the cookie the same route is rejected.
	anonReq := httptest.NewRequest("GET", "/api/admin/products", nil)
	anonRec := httptest.NewRecorder()
	stack.handler.ServeHTTP(anonRec, anonReq)
	if anonRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", anonRec.Code)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.post(t, "/api/admin/auth", `{"password":"wrong"}`, "203.0.113.9")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminLoginRateLimited(t *testing.T) {
	stack := newTestStack(t)

	for i := 0; i < 5; i++ {
		stack.post(t, "/api/admin/auth", `{"password":"wrong"}`, "203.0.113.9")
	}
	rec := stack.post(t, "/api/admin/auth", `{"password":"hunter2"}`, "203.0.113.9")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after five attempts, got %d", rec.Code)
	}
}

func TestHealthLive(t *testing.T) {
	stack := newTestStack(t)

	req := httptest.NewRequest("GET", "/health/live", nil)
	rec := httptest.NewRecorder()
	stack.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Comet-Env") != config.AppEnvDev {
		t.Fatalf("expected env header, got %q", rec.Header().Get("X-Comet-Env"))
	}
}

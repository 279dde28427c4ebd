package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/auth"
	"github.com/Den2856/sturdy-octo-happiness/internal/config"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/Den2856/sturdy-octo-happiness/internal/events"
	"github.com/Den2856/sturdy-octo-happiness/internal/mailer"
	"github.com/Den2856/sturdy-octo-happiness/internal/mocks"
	"github.com/Den2856/sturdy-octo-happiness/internal/validator"
	"github.com/Den2856/sturdy-octo-happiness/internal/verification"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const testJWTSecret = "test-secret-with-enough-entropy"

func newTestApplication(opts ...func(*Application)) *Application {
	var cfg config.Config
	cfg.Env = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.TTL = time.Hour
	cfg.AdminInviteCode = "let-me-in"
	cfg.CorsOrigins = []string{"http://localhost:5173"}

	app := &Application{
		config:      cfg,
		validator:   validator.NewValidator(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:      mailer.NewMockMailer(),
		tokens:      auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL),
		publisher:   events.NoopPublisher{},
		metrics:     newMetrics(),
		userRepo:    &mocks.MockUserRepo{},
		movieRepo:   &mocks.MockMovieRepo{},
		theaterRepo: &mocks.MockTheaterRepo{},
		seatRepo:    &mocks.MockSeatRepo{},
		orderRepo:   &mocks.MockOrderRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.gate == nil {
		app.gate = verification.NewGate(app.userRepo, app.mailer)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withURLParams attaches chi route parameters to a request that does not go
// through the router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func asUser(app *Application, r *http.Request, id uuid.UUID, role domain.Role) *http.Request {
	return app.contextSetUser(r, id, role)
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	var resp api.ValidationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if tt.wantErrMessage == "" {
		return
	}

	if len(resp.ValidationErrors) > 0 {
		errorSet := make(map[string]bool)
		for _, vErr := range resp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response %+v", tt.wantErrMessage, resp.ValidationErrors)
		}

		return
	}

	if resp.Message != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", resp.Message, tt.wantErrMessage)
	}
}

func ptr[T any](v T) *T {
	return &v
}

package integration_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "cinema_tickets"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

type BaseSuite struct {
	suite.Suite
	app        *TestApp
	containers *containers
}

// runSuite skips container suites in short mode and on hosts without a
// container runtime.
func runSuite(t *testing.T, s suite.TestingSuite) {
	if testing.Short() {
		t.Skip("skipping integration suite in short mode")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	suite.Run(t, s)
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	c, err := startContainers(ctx)
	if err != nil {
		s.T().Fatalf("failed to start containers: %s", err)
	}
	s.containers = c

	var cfg config.Config
	cfg.Port = 3000
	cfg.Env = "test"
	cfg.DB.DSN = c.dbDSN
	cfg.DB.MaxOpenConns = 25
	cfg.DB.MaxIdleTime = 2 * time.Minute
	cfg.Redis.URL = c.redisAddr
	cfg.Redis.MaxOpenConns = 10
	cfg.Redis.MaxIdleConns = 10
	cfg.Redis.MaxIdleTime = 2 * time.Minute
	cfg.JWT.Secret = TestJWTSecret
	cfg.JWT.TTL = time.Hour
	cfg.Verification.CodeTTL = 10 * time.Minute
	cfg.Verification.ResendCooldown = time.Minute
	cfg.Verification.MaxAttempts = 5
	cfg.AdminInviteCode = TestAdminInvite
	cfg.CorsOrigins = []string{"http://localhost:5173"}

	testApp, err := newTestApp(cfg)
	if err != nil {
		s.T().Fatalf("cannot initialize app: %s", err)
	}

	s.app = testApp
}

func (s *BaseSuite) SetupTest() {
	truncateAll(s.T(), s.app.DB)
	require.NoError(s.T(), s.app.Redis.FlushAll(context.Background()).Err())
	s.app.Mailer.Reset()
}

func (s *BaseSuite) TearDownSuite() {
	if s.app != nil {
		s.app.DB.Close()
		s.app.Redis.Close()
	}
	if s.containers != nil {
		s.containers.terminate()
	}
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	Cookies          []http.Cookie
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers, s.Cookies)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}

package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/stretchr/testify/require"
)

type AuthTestSuite struct {
	BaseSuite
}

func TestAuthSuite(t *testing.T) {
	runSuite(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestRegisterUser() {
	scenarios := []Scenario{
		{
			Name:             "returns 400 for request with malformed JSON",
			Method:           "POST",
			URL:              "/api/auth/register",
			Body:             strings.NewReader(`{"bad":"json"`),
			ExpectedStatus:   400,
			ExpectedResponse: `{"message": "body contains badly-formed JSON"}`,
		},
		{
			Name:   "returns 400 for invalid input data",
			Method: "POST",
			URL:    "/api/auth/register",
			Body: strings.NewReader(`{
				"email": "invalid-email",
				"password": "123"
			}`),
			ExpectedStatus: 400,
			ExpectedResponse: `{
				"message": "One or more fields are invalid",
				"validationErrors": [
					{"field": "email", "issue": "must be a valid email address"},
					{"field": "password", "issue": "must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, one number, and one special character (!@#$%^&*)."}
				]
			}`,
		},
		{
			Name:   "returns 409 when email already exists",
			Method: "POST",
			URL:    "/api/auth/register",
			Body: strings.NewReader(`{
				"email": "TEST@example.com",
				"password": "Test123!@#"
			}`),
			ExpectedStatus:   409,
			ExpectedResponse: `{"message": "user already exists"}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				insertUser(t, app.DB, TestUserEmail, domain.RoleUser)
			},
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var userCount int
				err := app.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM users WHERE email = $1", TestUserEmail).Scan(&userCount)
				require.NoError(t, err)
				require.Equal(t, 1, userCount, "should not create a new user")
			},
		},
		{
			Name:   "successfully registers a new user",
			Method: "POST",
			URL:    "/api/auth/register",
			Body: strings.NewReader(`{
				"email": " New.User@Example.com ",
				"password": "Test123!@#",
				"name": "New User"
			}`),
			ExpectedStatus:   201,
			ExpectedResponse: `{"role": "user"}`,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var role string
				err := app.DB.QueryRow(context.Background(), "SELECT role FROM users WHERE email = $1", "new.user@example.com").Scan(&role)
				require.NoError(t, err)
				require.Equal(t, "user", role)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *AuthTestSuite) TestRegisterAdmin() {
	scenarios := []Scenario{
		{
			Name:   "returns 403 for a wrong invite code",
			Method: "POST",
			URL:    "/api/admin/auth/register",
			Body: strings.NewReader(`{
				"email": "admin@example.com",
				"password": "Test123!@#",
				"invite": "guess"
			}`),
			ExpectedStatus:   403,
			ExpectedResponse: `{"message": "You do not have permission to access this resource"}`,
		},
		{
			Name:   "registers an admin with the invite code",
			Method: "POST",
			URL:    "/api/admin/auth/register",
			Body: strings.NewReader(`{
				"email": "admin@example.com",
				"password": "Test123!@#",
				"invite": "let-me-in"
			}`),
			ExpectedStatus:   201,
			ExpectedResponse: `{"role": "admin"}`,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *AuthTestSuite) TestLogin() {
	insertUser(s.T(), s.app.DB, TestUserEmail, domain.RoleUser)

	scenarios := []Scenario{
		{
			Name:             "returns 401 for a wrong password",
			Method:           "POST",
			URL:              "/api/auth/login",
			Body:             strings.NewReader(`{"email": "test@example.com", "password": "Wrong123!@#"}`),
			ExpectedStatus:   401,
			ExpectedResponse: `{"message": "Invalid authentication credentials"}`,
		},
		{
			Name:             "returns 401 for an unknown email",
			Method:           "POST",
			URL:              "/api/auth/login",
			Body:             strings.NewReader(`{"email": "nobody@example.com", "password": "Test123!@#"}`),
			ExpectedStatus:   401,
			ExpectedResponse: `{"message": "Invalid authentication credentials"}`,
		},
		{
			Name:             "customer cannot use the admin login",
			Method:           "POST",
			URL:              "/api/admin/auth/login",
			Body:             strings.NewReader(`{"email": "test@example.com", "password": "Test123!@#"}`),
			ExpectedStatus:   401,
			ExpectedResponse: `{"message": "Invalid authentication credentials"}`,
		},
		{
			Name:           "returns a token that opens the profile",
			Method:         "POST",
			URL:            "/api/auth/login",
			Body:           strings.NewReader(`{"email": "test@example.com", "password": "Test123!@#"}`),
			ExpectedStatus: 200,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var token api.TokenResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&token))
				require.NotEmpty(t, token.Token)

				req, err := prepareRequest("GET", "/api/auth/me", nil,
					map[string]string{"Authorization": "Bearer " + token.Token}, nil)
				require.NoError(t, err)

				rec := httptest.NewRecorder()
				app.App.Routes().ServeHTTP(rec, req)
				require.Equal(t, http.StatusOK, rec.Code)

				var me api.UserResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
				require.Equal(t, TestUserEmail, me.Email)
				require.Equal(t, api.RoleUser, me.Role)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/Den2856/sturdy-octo-happiness/internal/repository"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"updatedAt": {},
	"id":        {},
	"token":     {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for i := range cookies {
		req.AddCookie(&cookies[i])
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// validation errors come back in field order; ignore it
	opts := cmpopts.SortSlices(func(a, b any) bool {
		return fmt.Sprint(a) < fmt.Sprint(b)
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, item := range v {
				if nested, ok := item.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

func bearer(t testing.TB, app *TestApp, id uuid.UUID, role domain.Role) map[string]string {
	token, err := app.Tokens.NewToken(id, role)
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + token}
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE TABLE orders, seats, theaters, movies, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func insertUser(t testing.TB, db *pgxpool.Pool, email string, role domain.Role) uuid.UUID {
	user := &domain.User{Email: email, Name: TestUserName, Role: role}
	require.NoError(t, user.Password.Set(TestUserPassword))
	require.NoError(t, repository.NewPostgresUserRepository(db).Create(context.Background(), user))

	return user.ID
}

func insertMovie(t testing.TB, db *pgxpool.Pool, title string, status domain.MovieStatus) uuid.UUID {
	var id uuid.UUID

	query := `INSERT INTO movies (title, status, cover_url, description, genres, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := db.QueryRow(context.Background(), query,
		title, string(status), TestMovieCoverUrl, TestMovieDescription, []string{"Drama"}, decimal.RequireFromString(TestMoviePrice)).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertTheater(t testing.TB, db *pgxpool.Pool, name string) uuid.UUID {
	var id uuid.UUID

	err := db.QueryRow(context.Background(),
		`INSERT INTO theaters (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertSeats(t testing.TB, db *pgxpool.Pool, theaterId uuid.UUID, seats map[string]domain.SeatCategory) {
	for name, category := range seats {
		_, err := db.Exec(context.Background(),
			`INSERT INTO seats (name, type, theater_id) VALUES ($1, $2, $3)`, name, string(category), theaterId)
		require.NoError(t, err)
	}
}

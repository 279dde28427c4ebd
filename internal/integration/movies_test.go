package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type MovieTestSuite struct {
	BaseSuite
}

func TestMovieSuite(t *testing.T) {
	runSuite(t, new(MovieTestSuite))
}

func (s *MovieTestSuite) TestGetMovies() {
	scenarios := []Scenario{
		{
			Name:             "returns empty list when no movies exist",
			Method:           "GET",
			URL:              "/api/movies",
			ExpectedStatus:   200,
			ExpectedResponse: `{"items": [], "total": 0}`,
		},
		{
			Name:           "hides drafts from the public list",
			Method:         "GET",
			URL:            "/api/movies?status=draft",
			ExpectedStatus: 200,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var list api.MovieListResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
				require.Equal(t, 1, list.Total)
				require.Len(t, list.Items, 1)

				movie := list.Items[0]
				require.Equal(t, TestMovieTitle, movie.Title)
				require.Equal(t, api.Published, movie.Status)
				require.Equal(t, []string{"Drama"}, movie.Genres)
				require.Equal(t, "12.00", movie.Price.StringFixed(2))
				require.Equal(t, "USD", movie.Currency)
			},
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				insertMovie(t, app.DB, TestMovieTitle, domain.MovieStatusPublished)
				insertMovie(t, app.DB, "Unreleased", domain.MovieStatusDraft)
			},
		},
		{
			Name:           "searches by title",
			Method:         "GET",
			URL:            "/api/movies?q=nothing-like-this",
			ExpectedStatus: 200,
			ExpectedResponse: `{"items": [], "total": 0}`,
		},
		{
			Name:           "rejects an oversized page",
			Method:         "GET",
			URL:            "/api/movies?limit=1000",
			ExpectedStatus: 400,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *MovieTestSuite) TestGetMovie() {
	published := insertMovie(s.T(), s.app.DB, TestMovieTitle, domain.MovieStatusPublished)
	draft := insertMovie(s.T(), s.app.DB, "Unreleased", domain.MovieStatusDraft)
	admin := insertUser(s.T(), s.app.DB, TestAdminEmail, domain.RoleAdmin)

	scenarios := []Scenario{
		{
			Name:           "returns a published movie",
			Method:         "GET",
			URL:            "/api/movies/" + published.String(),
			ExpectedStatus: 200,
		},
		{
			Name:             "returns 404 for a draft",
			Method:           "GET",
			URL:              "/api/movies/" + draft.String(),
			ExpectedStatus:   404,
			ExpectedResponse: `{"message": "The requested resource not found"}`,
		},
		{
			Name:           "admin sees the draft",
			Method:         "GET",
			URL:            "/api/admin/movies/" + draft.String(),
			Headers:        bearer(s.T(), s.app, admin, domain.RoleAdmin),
			ExpectedStatus: 200,
		},
		{
			Name:             "returns 400 for a malformed id",
			Method:           "GET",
			URL:              "/api/movies/42",
			ExpectedStatus:   400,
			ExpectedResponse: `{"message": "invalid id parameter"}`,
		},
		{
			Name:           "returns 404 for an unknown id",
			Method:         "GET",
			URL:            "/api/movies/" + uuid.NewString(),
			ExpectedStatus: 404,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *MovieTestSuite) TestManageMovies() {
	admin := insertUser(s.T(), s.app.DB, TestAdminEmail, domain.RoleAdmin)
	customer := insertUser(s.T(), s.app.DB, TestUserEmail, domain.RoleUser)

	var created uuid.UUID

	scenarios := []Scenario{
		{
			Name:           "customers cannot create movies",
			Method:         "POST",
			URL:            "/api/admin/movies",
			Body:           strings.NewReader(`{"title": "Dune", "price": "12.5"}`),
			Headers:        bearer(s.T(), s.app, customer, domain.RoleUser),
			ExpectedStatus: 403,
		},
		{
			Name:           "rejects a schedule that ends before it starts",
			Method:         "POST",
			URL:            "/api/admin/movies",
			Body:           strings.NewReader(`{"title": "Dune", "price": "12.5", "startDate": "2025-04-01", "endDate": "2025-03-01"}`),
			Headers:        bearer(s.T(), s.app, admin, domain.RoleAdmin),
			ExpectedStatus: 400,
			ExpectedResponse: `{"message": "endDate must not be before startDate"}`,
		},
		{
			Name:           "creates a published movie by default",
			Method:         "POST",
			URL:            "/api/admin/movies",
			Body:           strings.NewReader(`{"title": "Dune", "price": "12.5", "genres": ["Sci-Fi"], "startDate": "2025-03-01"}`),
			Headers:        bearer(s.T(), s.app, admin, domain.RoleAdmin),
			ExpectedStatus: 201,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var movie api.MovieResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&movie))
				require.Equal(t, api.Published, movie.Status)
				require.Equal(t, "2025-03-01", movie.StartDate.Format("2006-01-02"))
				created = movie.Id
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}

	require.NotEqual(s.T(), uuid.Nil, created)

	theater := insertTheater(s.T(), s.app.DB, TestTheaterName)
	user := insertUser(s.T(), s.app.DB, "booker@example.com", domain.RoleUser)
	_, err := s.app.DB.Exec(context.Background(),
		`INSERT INTO orders (user_id, movie_id, theater_id, title, price, selected_date, seats)
		VALUES ($1, $2, $3, 'Dune', 12.5, '2025-03-14', '{A1}')`, user, created, theater)
	require.NoError(s.T(), err)

	Scenario{
		Name:             "refuses to delete a movie with orders",
		Method:           "DELETE",
		URL:              "/api/admin/movies/" + created.String(),
		Headers:          bearer(s.T(), s.app, admin, domain.RoleAdmin),
		ExpectedStatus:   409,
		ExpectedResponse: `{"message": "movie is referenced by existing orders"}`,
	}.Run(s.T(), s.app)
}

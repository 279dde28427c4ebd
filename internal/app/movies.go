package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	DefaultSort     = "-created_at"
)

var errInvalidSchedule = errors.New("endDate must not be before startDate")

// GetMovies lists published movies only.
func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params, err := moviesParamsFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	published := api.Published
	params.Status = &published

	app.listMovies(w, r, params)
}

func (app *Application) GetAdminMovies(w http.ResponseWriter, r *http.Request) {
	params, err := moviesParamsFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if status := queryString(r, "status"); status != nil {
		s := api.MovieStatus(*status)
		params.Status = &s
	}

	app.listMovies(w, r, params)
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), toMovieFilters(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Items: make([]api.MovieResponse, len(movies)),
	}
	for i, movie := range movies {
		resp.Items[i] = toMovieResponse(movie)
	}
	if metadata != nil {
		resp.Total = metadata.TotalRecords
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func moviesParamsFromQuery(r *http.Request) (api.GetMoviesParams, error) {
	var (
		params api.GetMoviesParams
		err    error
	)

	params.Q = queryString(r, "q")

	params.Page, err = queryInt(r, "page")
	if err != nil {
		return params, err
	}

	params.Limit, err = queryInt(r, "limit")
	if err != nil {
		return params, err
	}

	return params, nil
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
			Sort:     DefaultSort,
		},
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.Limit != nil {
		filters.PageSize = *params.Limit
	}
	if params.Q != nil {
		filters.Term = *params.Q
	}
	if params.Status != nil {
		filters.Status = domain.MovieStatus(*params.Status)
	}

	return filters
}

// GetMovie hides drafts from the public catalog.
func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieFromPath(w, r)
	if !ok {
		return
	}

	if movie.Status != domain.MovieStatusPublished {
		app.notFoundResponse(w, r)
		return
	}

	err := app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAdminMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieFromPath(w, r)
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) movieFromPath(w http.ResponseWriter, r *http.Request) (*domain.Movie, bool) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	return movie, true
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	input, ok := app.readMovieRequest(w, r)
	if !ok {
		return
	}

	movie := &domain.Movie{}
	applyMovieRequest(movie, input)

	err := app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieFromPath(w, r)
	if !ok {
		return
	}

	input, ok := app.readMovieRequest(w, r)
	if !ok {
		return
	}

	applyMovieRequest(movie, input)

	err := app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrEditConflict):
			app.conflictResponse(w, r, errors.New("movie is referenced by existing orders"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) readMovieRequest(w http.ResponseWriter, r *http.Request) (api.MovieRequest, bool) {
	var input api.MovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return input, false
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return input, false
	}

	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(input.StartDate.Time) {
		app.badRequestResponse(w, r, errInvalidSchedule)
		return input, false
	}

	return input, true
}

func applyMovieRequest(movie *domain.Movie, input api.MovieRequest) {
	movie.Title = strings.TrimSpace(input.Title)
	movie.Year = input.Year
	movie.Status = domain.MovieStatusPublished
	if input.Status != "" {
		movie.Status = domain.MovieStatus(input.Status)
	}
	movie.CoverUrl = input.CoverUrl
	movie.BackdropUrl = input.BackdropUrl
	movie.Description = input.Description
	movie.Genres = input.Genres
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	movie.Runtime = input.Runtime
	movie.Rating = input.Rating
	movie.StartDate = nil
	if input.StartDate != nil {
		movie.StartDate = &input.StartDate.Time
	}
	movie.EndDate = nil
	if input.EndDate != nil {
		movie.EndDate = &input.EndDate.Time
	}
	movie.Price = input.Price
	if movie.Currency == "" {
		movie.Currency = domain.DefaultCurrency
	}
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	resp := api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Year:        movie.Year,
		Status:      api.MovieStatus(movie.Status),
		CoverUrl:    movie.CoverUrl,
		BackdropUrl: movie.BackdropUrl,
		Description: movie.Description,
		Genres:      movie.Genres,
		Runtime:     movie.Runtime,
		Rating:      movie.Rating,
		Price:       movie.Price,
		Currency:    movie.Currency,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}

	if resp.Genres == nil {
		resp.Genres = []string{}
	}
	if movie.StartDate != nil {
		resp.StartDate = &types.Date{Time: *movie.StartDate}
	}
	if movie.EndDate != nil {
		resp.EndDate = &types.Date{Time: *movie.EndDate}
	}

	return resp
}

// movieById loads a movie for the booking flow. Drafts are not bookable and
// answer 404 like a missing movie; any other failure is a 500.
func (app *Application) movieById(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*domain.Movie, bool) {
	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "movie not found")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	if movie.Status != domain.MovieStatusPublished {
		app.errorResponse(w, r, http.StatusNotFound, "movie not found")
		return nil, false
	}

	return movie, true
}

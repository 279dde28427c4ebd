package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
)

func (app *Application) GetTheaters(w http.ResponseWriter, r *http.Request) {
	term := ""
	if q := queryString(r, "q"); q != nil {
		term = *q
	}

	theaters, err := app.theaterRepo.GetAll(r.Context(), term)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.TheaterResponse, len(theaters))
	for i := range theaters {
		resp[i] = toTheaterResponse(&theaters[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateTheater(w http.ResponseWriter, r *http.Request) {
	input, ok := app.readTheaterRequest(w, r)
	if !ok {
		return
	}

	theater := toTheater(input)

	err := app.theaterRepo.Create(r.Context(), theater)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toTheaterResponse(theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateTheater(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input, ok := app.readTheaterRequest(w, r)
	if !ok {
		return
	}

	theater := toTheater(input)
	theater.ID = id

	err = app.theaterRepo.Update(r.Context(), theater)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toTheaterResponse(theater), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteTheater(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.theaterRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrEditConflict):
			app.conflictResponse(w, r, errors.New("theater is referenced by existing orders"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) readTheaterRequest(w http.ResponseWriter, r *http.Request) (api.TheaterRequest, bool) {
	var input api.TheaterRequest

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

	return input, true
}

func toTheater(input api.TheaterRequest) *domain.Theater {
	theater := &domain.Theater{
		Name:   strings.TrimSpace(input.Name),
		Status: domain.TheaterStatusOpen,
	}
	if input.Status != "" {
		theater.Status = domain.TheaterStatus(input.Status)
	}

	return theater
}

func toTheaterResponse(theater *domain.Theater) api.TheaterResponse {
	return api.TheaterResponse{
		Id:        theater.ID,
		Name:      theater.Name,
		Status:    api.TheaterStatus(theater.Status),
		CreatedAt: theater.CreatedAt,
	}
}

func (app *Application) theaterById(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*domain.Theater, bool) {
	theater, err := app.theaterRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "theater not found")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	return theater, true
}

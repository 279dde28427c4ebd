package app

import (
	"errors"
	"net/http"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
)

var errTheaterIdRequired = errors.New("theaterId query parameter must be a valid UUID")

func (app *Application) GetSeats(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	theaterId, err := uuid.Parse(r.URL.Query().Get("theaterId"))
	if err != nil {
		app.badRequestResponse(w, r, errTheaterIdRequired)
		return
	}

	seats, err := app.seatRepo.GetByTheater(r.Context(), theaterId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(seats) == 0 {
		logger.Warn("seat map not found for theater", "theater_id", theaterId)
		app.notFoundResponse(w, r)
		return
	}

	resp := make([]api.SeatResponse, len(seats))
	for i := range seats {
		resp[i] = toSeatResponse(&seats[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateSeat(w http.ResponseWriter, r *http.Request) {
	var input api.SeatRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seat := &domain.Seat{
		Name:      input.Name,
		Type:      domain.SeatCategory(input.Type),
		TheaterID: uuid.MustParse(input.TheaterId),
	}

	err = app.seatRepo.Create(r.Context(), seat)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "theater not found")
		case errors.Is(err, domain.ErrSeatAlreadyExists):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toSeatResponse(seat), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteSeat(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.seatRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toSeatResponse(seat *domain.Seat) api.SeatResponse {
	return api.SeatResponse{
		Id:        seat.ID,
		Name:      seat.Name,
		Type:      api.SeatType(seat.Type),
		TheaterId: seat.TheaterID,
	}
}

package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
)

func (app *Application) QuotePrice(w http.ResponseWriter, r *http.Request) {
	var input api.QuoteRequest

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

	movie, ok := app.movieById(w, r, uuid.MustParse(input.MovieId))
	if !ok {
		return
	}

	catalog := app.seatCatalog(r.Context(), app.contextGetLogger(r), uuid.MustParse(input.TheaterId))
	quote := domain.NewQuote(movie.Price, input.Seats, catalog)

	err = app.writeJSON(w, http.StatusOK, toQuoteResponse(quote, movie.Currency), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// seatCatalog returns the theater's seats for pricing. A failed lookup
// prices every seat as Regular instead of failing the quote.
func (app *Application) seatCatalog(ctx context.Context, logger *slog.Logger, theaterId uuid.UUID) []domain.Seat {
	seats, err := app.seatRepo.GetByTheater(ctx, theaterId)
	if err != nil {
		logger.Warn("seat catalog lookup failed, pricing seats as regular", "theater_id", theaterId, "error", err)
		return nil
	}

	return seats
}

func toQuoteResponse(quote domain.Quote, currency string) api.QuoteResponse {
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	resp := api.QuoteResponse{
		BasePrice:  quote.BasePrice,
		Seats:      make([]api.QuotedSeat, len(quote.Seats)),
		Subtotal:   quote.Subtotal,
		ServiceFee: quote.ServiceFee.Round(2),
		Total:      quote.DisplayTotal(),
		Currency:   currency,
	}

	for i, seat := range quote.Seats {
		resp.Seats[i] = api.QuotedSeat{
			Name:  seat.Name,
			Type:  api.SeatType(seat.Category),
			Price: seat.Price,
		}
	}

	return resp
}

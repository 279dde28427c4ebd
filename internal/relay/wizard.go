package relay

import (
	"net/http"
	"strings"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/shopspring/decimal"
)

// MovieSlot is written by the movie page after a showtime is picked.
type MovieSlot struct {
	MovieId          string           `json:"movieId"`
	Title            string           `json:"title,omitempty"`
	CoverUrl         string           `json:"coverUrl,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	TheaterId        string           `json:"theaterId"`
	SelectedDate     string           `json:"selectedDate"`
	SelectedTime     string           `json:"selectedTime,omitempty"`
	Runtime          string           `json:"runtime,omitempty"`
	RuntimeFormatted string           `json:"runtimeFormatted,omitempty"`
}

// SummarySlot is written by the seat page together with the seat list.
type SummarySlot struct {
	MovieId   string           `json:"movieId"`
	Title     string           `json:"title,omitempty"`
	TheaterId string           `json:"theaterId,omitempty"`
	DateISO   string           `json:"dateISO,omitempty"`
	Time      string           `json:"time,omitempty"`
	Seats     []string         `json:"seats,omitempty"`
	Total     *decimal.Decimal `json:"total,omitempty"`
}

// Assemble builds the order request data from the three wizard slots. All
// three must be present. Values from the later summary slot win over the
// movie slot, and the dedicated seat slot wins over the summary's seat list.
func Assemble(r *http.Request) (api.OrderData, error) {
	var (
		movie   MovieSlot
		seats   []string
		summary SummarySlot
	)

	if err := Read(r, MovieData, &movie); err != nil {
		return api.OrderData{}, err
	}

	if err := Read(r, SelectedSeats, &seats); err != nil {
		return api.OrderData{}, err
	}

	if err := Read(r, OrderSummary, &summary); err != nil {
		return api.OrderData{}, err
	}

	data := api.OrderData{
		MovieId:   first(movie.MovieId, summary.MovieId),
		TheaterId: first(summary.TheaterId, movie.TheaterId),
		Date:      NormalizeDate(first(summary.DateISO, movie.SelectedDate)),
		Time:      first(summary.Time, movie.SelectedTime),
		Seats:     seats,
		Total:     summary.Total,
	}

	if len(data.Seats) == 0 {
		data.Seats = summary.Seats
	}

	return data, nil
}

// NormalizeDate reduces an ISO timestamp such as 2025-03-14T00:00:00.000Z to
// its calendar date in UTC. Other values are returned trimmed but unchanged.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return value
	}

	return t.UTC().Format(time.DateOnly)
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}

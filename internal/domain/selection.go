package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Selection is the booking wizard state carried by the client up to the
// order step: movie and theater choice, show date and time, and seats.
type Selection struct {
	MovieID   uuid.UUID
	TheaterID uuid.UUID
	Date      time.Time
	Time      string
	Seats     []string
	// ClientTotal is what the client displayed. It is informational only.
	ClientTotal *decimal.Decimal
}

// CheckAgainst verifies the selection against the live records it refers to.
func (s Selection) CheckAgainst(movie *Movie, theater *Theater, catalog []Seat) error {
	if !theater.Open() {
		return ErrTheaterClosed
	}

	if !movie.Showing(s.Date) {
		return ErrDateOutsideSchedule
	}

	known := make(map[string]bool, len(catalog))
	for _, seat := range catalog {
		known[seat.Name] = true
	}

	for _, name := range s.Seats {
		if !known[name] {
			return ErrUnknownSeat
		}
	}

	return nil
}

package domain

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Seat struct {
	ID        uuid.UUID
	Name      string
	Type      SeatCategory
	TheaterID uuid.UUID
	CreatedAt time.Time
}

// Row returns the row letter of a seat name such as "B3".
func (s Seat) Row() string {
	if s.Name == "" {
		return ""
	}

	return s.Name[:1]
}

// Number returns the numeric part of the seat name, or 0 when it has none.
func (s Seat) Number() int {
	if len(s.Name) < 2 {
		return 0
	}

	n, err := strconv.Atoi(s.Name[1:])
	if err != nil {
		return 0
	}

	return n
}

// SortSeats orders seats by row letter, then by seat number.
func SortSeats(seats []Seat) {
	sort.SliceStable(seats, func(i, j int) bool {
		if seats[i].Row() != seats[j].Row() {
			return seats[i].Row() < seats[j].Row()
		}

		return seats[i].Number() < seats[j].Number()
	})
}

type SeatRepository interface {
	GetByTheater(ctx context.Context, theaterID uuid.UUID) ([]Seat, error)
	Create(ctx context.Context, seat *Seat) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	MovieID      uuid.UUID
	TheaterID    uuid.UUID
	Title        string
	CoverUrl     string
	Price        decimal.Decimal
	SelectedDate time.Time
	SelectedTime string
	Seats        []string
	BookingInfo  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOrder snapshots the movie and selection into an order. Seats are
// copied by name so later catalog edits do not alter the order.
func NewOrder(user *User, movie *Movie, theater *Theater, selection Selection, price decimal.Decimal) (*Order, error) {
	if len(selection.Seats) == 0 {
		return nil, fmt.Errorf("order requires at least one seat")
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("order price must be positive")
	}

	seats := make([]string, len(selection.Seats))
	copy(seats, selection.Seats)

	date := selection.Date.Format(DateLayout)

	return &Order{
		UserID:       user.ID,
		MovieID:      movie.ID,
		TheaterID:    theater.ID,
		Title:        movie.Title,
		CoverUrl:     movie.CoverUrl,
		Price:        price,
		SelectedDate: selection.Date,
		SelectedTime: selection.Time,
		Seats:        seats,
		BookingInfo:  fmt.Sprintf("Booking for %s on %s", movie.Title, date),
	}, nil
}

type OrderDetails struct {
	Order
	UserEmail   string
	UserName    string
	TheaterName string
}

type OrderFilters struct {
	UserID    *uuid.UUID
	UserEmail string
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetAll(ctx context.Context, filters OrderFilters) ([]OrderDetails, error)
	GetById(ctx context.Context, id uuid.UUID) (*OrderDetails, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

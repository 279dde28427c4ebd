package mocks

import (
	"context"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
)

type MockSeatRepo struct {
	domain.SeatRepository
	GetByTheaterFunc func(ctx context.Context, theaterID uuid.UUID) ([]domain.Seat, error)
	CreateFunc       func(ctx context.Context, seat *domain.Seat) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *MockSeatRepo) GetByTheater(ctx context.Context, theaterID uuid.UUID) ([]domain.Seat, error) {
	return m.GetByTheaterFunc(ctx, theaterID)
}

func (m *MockSeatRepo) Create(ctx context.Context, seat *domain.Seat) error {
	return m.CreateFunc(ctx, seat)
}

func (m *MockSeatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

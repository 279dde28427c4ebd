package mocks

import (
	"context"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
)

type MockTheaterRepo struct {
	domain.TheaterRepository
	GetAllFunc  func(ctx context.Context, term string) ([]domain.Theater, error)
	GetByIdFunc func(ctx context.Context, id uuid.UUID) (*domain.Theater, error)
	CreateFunc  func(ctx context.Context, theater *domain.Theater) error
	UpdateFunc  func(ctx context.Context, theater *domain.Theater) error
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTheaterRepo) GetAll(ctx context.Context, term string) ([]domain.Theater, error) {
	return m.GetAllFunc(ctx, term)
}

func (m *MockTheaterRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Theater, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockTheaterRepo) Create(ctx context.Context, theater *domain.Theater) error {
	return m.CreateFunc(ctx, theater)
}

func (m *MockTheaterRepo) Update(ctx context.Context, theater *domain.Theater) error {
	return m.UpdateFunc(ctx, theater)
}

func (m *MockTheaterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TheaterStatus string

const (
	TheaterStatusOpen   TheaterStatus = "open"
	TheaterStatusClosed TheaterStatus = "closed"
)

type Theater struct {
	ID        uuid.UUID
	Name      string
	Status    TheaterStatus
	CreatedAt time.Time
}

func (t *Theater) Open() bool {
	return t.Status != TheaterStatusClosed
}

type TheaterRepository interface {
	GetAll(ctx context.Context, term string) ([]Theater, error)
	GetById(ctx context.Context, id uuid.UUID) (*Theater, error)
	Create(ctx context.Context, theater *Theater) error
	Update(ctx context.Context, theater *Theater) error
	Delete(ctx context.Context, id uuid.UUID) error
}

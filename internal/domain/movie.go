package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovieStatus string

const (
	MovieStatusDraft     MovieStatus = "draft"
	MovieStatusPublished MovieStatus = "published"
)

const DefaultCurrency = "USD"

type Movie struct {
	ID          uuid.UUID
	Title       string
	Year        *int
	Status      MovieStatus
	CoverUrl    string
	BackdropUrl string
	Description string
	Genres      []string
	Runtime     string
	Rating      *float64
	StartDate   *time.Time
	EndDate     *time.Time
	Price       decimal.Decimal
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Showing reports whether date falls inside the movie's scheduling window.
// An unset bound does not restrict the date.
func (m *Movie) Showing(date time.Time) bool {
	day := truncateDay(date)

	if m.StartDate != nil && day.Before(truncateDay(*m.StartDate)) {
		return false
	}
	if m.EndDate != nil && day.After(truncateDay(*m.EndDate)) {
		return false
	}

	return true
}

func truncateDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

type MovieFilters struct {
	Pagination
	Status MovieStatus
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id uuid.UUID) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

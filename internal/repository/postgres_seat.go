package repository

import (
	"context"
	"errors"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

// GetByTheater returns the theater's seats ordered by row letter and seat
// number.
func (p *PostgresSeatRepository) GetByTheater(ctx context.Context, theaterID uuid.UUID) ([]domain.Seat, error) {
	query := `
		SELECT id, name, type, theater_id, created_at
		FROM seats
		WHERE theater_id = $1
	`

	rows, err := p.db.Query(ctx, query, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seat.ID,
			&seat.Name,
			&seat.Type,
			&seat.TheaterID,
			&seat.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	domain.SortSeats(seats)

	return seats, nil
}

// Create adds a seat to an existing theater. The theater row is share-locked
// so it cannot be deleted between the check and the insert.
func (p *PostgresSeatRepository) Create(ctx context.Context, seat *domain.Seat) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var exists bool

		err := tx.QueryRow(ctx, `SELECT true FROM theaters WHERE id = $1 FOR SHARE`, seat.TheaterID).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query := `
			INSERT INTO seats (name, type, theater_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		err = tx.QueryRow(ctx, query, seat.Name, seat.Type, seat.TheaterID).Scan(&seat.ID, &seat.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrSeatAlreadyExists
			}

			return err
		}

		return nil
	})
}

func (p *PostgresSeatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM seats WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

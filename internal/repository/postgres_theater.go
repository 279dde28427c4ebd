package repository

import (
	"context"
	"errors"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTheaterRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheaterRepository(db *pgxpool.Pool) *PostgresTheaterRepository {
	return &PostgresTheaterRepository{
		db: db,
	}
}

func (p *PostgresTheaterRepository) GetAll(ctx context.Context, term string) ([]domain.Theater, error) {
	query := `
		SELECT id, name, status, created_at
		FROM theaters
		WHERE name ILIKE '%' || $1 || '%' OR $1 = ''
		ORDER BY name
	`

	rows, err := p.db.Query(ctx, query, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	theaters := make([]domain.Theater, 0)

	for rows.Next() {
		var theater domain.Theater

		if err := rows.Scan(
			&theater.ID,
			&theater.Name,
			&theater.Status,
			&theater.CreatedAt,
		); err != nil {
			return nil, err
		}

		theaters = append(theaters, theater)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return theaters, nil
}

func (p *PostgresTheaterRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Theater, error) {
	query := `SELECT id, name, status, created_at FROM theaters WHERE id = $1`

	var theater domain.Theater

	err := p.db.QueryRow(ctx, query, id).Scan(
		&theater.ID,
		&theater.Name,
		&theater.Status,
		&theater.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &theater, nil
}

func (p *PostgresTheaterRepository) Create(ctx context.Context, theater *domain.Theater) error {
	query := `INSERT INTO theaters (name, status) VALUES ($1, $2) RETURNING id, created_at`

	return p.db.QueryRow(ctx, query, theater.Name, theater.Status).Scan(&theater.ID, &theater.CreatedAt)
}

func (p *PostgresTheaterRepository) Update(ctx context.Context, theater *domain.Theater) error {
	query := `UPDATE theaters SET name = $1, status = $2 WHERE id = $3 RETURNING created_at`

	err := p.db.QueryRow(ctx, query, theater.Name, theater.Status, theater.ID).Scan(&theater.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	return err
}

// Delete removes the theater together with its seats. Theaters referenced by
// orders are kept and reported as an edit conflict.
func (p *PostgresTheaterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM theaters WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEditConflict
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

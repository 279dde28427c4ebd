package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

const movieColumns = `id, title, year, status, cover_url, backdrop_url, description, genres, runtime,
	rating, start_date, end_date, price, currency, created_at, updated_at`

func scanMovie(row pgx.Row, extra ...any) (*domain.Movie, error) {
	var (
		movie domain.Movie
		price pgtype.Numeric
	)

	dest := append(extra,
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.Status,
		&movie.CoverUrl,
		&movie.BackdropUrl,
		&movie.Description,
		&movie.Genres,
		&movie.Runtime,
		&movie.Rating,
		&movie.StartDate,
		&movie.EndDate,
		&price,
		&movie.Currency,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	err := row.Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	movie.Price, err = fromNumeric(price)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), %s
		FROM movies
		WHERE ((to_tsvector('english', title) @@ plainto_tsquery('english', $1)
			OR title ILIKE '%%' || $1 || '%%')
			OR $1 = '')
			AND (status = $2 OR $2 = '')
		ORDER BY %s %s, id
		LIMIT $3 OFFSET $4`, movieColumns, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, string(filters.Status), filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows, &totalRecords)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	return scanMovie(p.db.QueryRow(ctx, query, id))
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, year, status, cover_url, backdrop_url, description, genres,
			runtime, rating, start_date, end_date, price, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	return p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Year,
		movie.Status,
		movie.CoverUrl,
		movie.BackdropUrl,
		movie.Description,
		movie.Genres,
		movie.Runtime,
		movie.Rating,
		movie.StartDate,
		movie.EndDate,
		toNumeric(movie.Price),
		movie.Currency,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $1, year = $2, status = $3, cover_url = $4, backdrop_url = $5, description = $6,
			genres = $7, runtime = $8, rating = $9, start_date = $10, end_date = $11, price = $12,
			currency = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING updated_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Year,
		movie.Status,
		movie.CoverUrl,
		movie.BackdropUrl,
		movie.Description,
		movie.Genres,
		movie.Runtime,
		movie.Rating,
		movie.StartDate,
		movie.EndDate,
		toNumeric(movie.Price),
		movie.Currency,
		movie.ID,
	).Scan(&movie.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	return err
}

// Delete removes a movie. Movies that already have orders are kept and
// reported as an edit conflict.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
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

package repository

import (
	"context"
	"errors"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// Create inserts the order in a single statement. A movie, theater or user
// that disappeared since it was read surfaces as ErrRecordNotFound.
func (p *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (user_id, movie_id, theater_id, title, cover_url, price,
			selected_date, selected_time, seats, booking_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		order.UserID,
		order.MovieID,
		order.TheaterID,
		order.Title,
		order.CoverUrl,
		toNumeric(order.Price),
		order.SelectedDate,
		order.SelectedTime,
		order.Seats,
		order.BookingInfo,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

const orderDetailsQuery = `
	SELECT o.id, o.user_id, o.movie_id, o.theater_id, o.title, o.cover_url, o.price,
		o.selected_date, o.selected_time, o.seats, o.booking_info, o.created_at, o.updated_at,
		u.email, u.name, t.name
	FROM orders o
	JOIN users u ON u.id = o.user_id
	JOIN theaters t ON t.id = o.theater_id
`

func scanOrderDetails(row pgx.Row) (*domain.OrderDetails, error) {
	var (
		details domain.OrderDetails
		price   pgtype.Numeric
	)

	err := row.Scan(
		&details.ID,
		&details.UserID,
		&details.MovieID,
		&details.TheaterID,
		&details.Title,
		&details.CoverUrl,
		&price,
		&details.SelectedDate,
		&details.SelectedTime,
		&details.Seats,
		&details.BookingInfo,
		&details.CreatedAt,
		&details.UpdatedAt,
		&details.UserEmail,
		&details.UserName,
		&details.TheaterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	details.Price, err = fromNumeric(price)
	if err != nil {
		return nil, err
	}

	return &details, nil
}

func (p *PostgresOrderRepository) GetAll(ctx context.Context, filters domain.OrderFilters) ([]domain.OrderDetails, error) {
	query := orderDetailsQuery + `
		WHERE (o.user_id = $1 OR $1 IS NULL)
			AND (u.email = $2 OR $2 = '')
		ORDER BY o.created_at DESC
	`

	rows, err := p.db.Query(ctx, query, filters.UserID, filters.UserEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.OrderDetails, 0)

	for rows.Next() {
		details, err := scanOrderDetails(rows)
		if err != nil {
			return nil, err
		}

		orders = append(orders, *details)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (p *PostgresOrderRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.OrderDetails, error) {
	return scanOrderDetails(p.db.QueryRow(ctx, orderDetailsQuery+` WHERE o.id = $1`, id))
}

func (p *PostgresOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

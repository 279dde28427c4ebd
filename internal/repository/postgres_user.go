package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

const userColumns = `id, email, password_hash, name, avatar, role, created_at, updated_at, version`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password.Hash,
		&user.Name,
		&user.Avatar,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, avatar, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	err := p.db.QueryRow(ctx,
		query,
		user.Email,
		user.Password.Hash,
		user.Name,
		user.Avatar,
		user.Role).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Version)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, *user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUser(p.db.QueryRow(ctx, query, email))
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUser(p.db.QueryRow(ctx, query, id))
}

// Update writes the user back only if nobody changed it since it was read.
func (p *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users
		SET email = $1, password_hash = $2, name = $3, avatar = $4, role = $5,
			updated_at = NOW(), version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING updated_at, version`

	err := p.db.QueryRow(ctx,
		query,
		user.Email,
		user.Password.Hash,
		user.Name,
		user.Avatar,
		user.Role,
		user.ID,
		user.Version).Scan(&user.UpdatedAt, &user.Version)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrEditConflict
		case isUniqueViolation(err):
			return domain.ErrUserAlreadyExists
		default:
			return err
		}
	}

	return nil
}

func (p *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresUserRepository) SetVerificationCode(ctx context.Context, email string, codeHash []byte, expiry time.Time) error {
	query := `UPDATE users
		SET verification_code_hash = $1, code_expires = $2
		WHERE email = $3`

	result, err := p.db.Exec(ctx, query, codeHash, expiry, email)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// ConsumeVerificationCode matches and clears the code in a single statement,
// so two concurrent checks of one code cannot both succeed.
func (p *PostgresUserRepository) ConsumeVerificationCode(ctx context.Context, email string, codeHash []byte, now time.Time) error {
	query := `UPDATE users
		SET verification_code_hash = NULL, code_expires = NULL
		WHERE email = $1 AND verification_code_hash = $2 AND code_expires > $3
		RETURNING id`

	var id uuid.UUID

	err := p.db.QueryRow(ctx, query, email, codeHash, now).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

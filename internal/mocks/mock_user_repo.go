package mocks

import (
	"context"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
)

type MockUserRepo struct {
	domain.UserRepository
	CreateFunc                  func(ctx context.Context, user *domain.User) error
	GetAllFunc                  func(ctx context.Context) ([]domain.User, error)
	GetByEmailFunc              func(ctx context.Context, email string) (*domain.User, error)
	GetByIdFunc                 func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFunc                  func(ctx context.Context, user *domain.User) error
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	SetVerificationCodeFunc     func(ctx context.Context, email string, codeHash []byte, expiry time.Time) error
	ConsumeVerificationCodeFunc func(ctx context.Context, email string, codeHash []byte, now time.Time) error
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *MockUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockUserRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFunc(ctx, user)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockUserRepo) SetVerificationCode(ctx context.Context, email string, codeHash []byte, expiry time.Time) error {
	return m.SetVerificationCodeFunc(ctx, email, codeHash, expiry)
}

func (m *MockUserRepo) ConsumeVerificationCode(ctx context.Context, email string, codeHash []byte, now time.Time) error {
	return m.ConsumeVerificationCodeFunc(ctx, email, codeHash, now)
}

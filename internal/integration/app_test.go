package integration_test

import (
	"log/slog"
	"os"

	"github.com/Den2856/sturdy-octo-happiness/internal/app"
	"github.com/Den2856/sturdy-octo-happiness/internal/auth"
	"github.com/Den2856/sturdy-octo-happiness/internal/config"
	"github.com/Den2856/sturdy-octo-happiness/internal/events"
	"github.com/Den2856/sturdy-octo-happiness/internal/mailer"
	"github.com/Den2856/sturdy-octo-happiness/internal/repository"
	appvalidator "github.com/Den2856/sturdy-octo-happiness/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Mailer *mailer.MockMailer
	Tokens *auth.Issuer
}

func newTestApp(cfg config.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mailer,
		events.NoopPublisher{},
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresTheaterRepository(db),
		repository.NewPostgresSeatRepository(db),
		repository.NewPostgresOrderRepository(db),
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Redis:  redisClient,
		Mailer: mailer,
		Tokens: auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL),
	}, nil
}

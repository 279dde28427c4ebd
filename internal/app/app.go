package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/internal/auth"
	"github.com/Den2856/sturdy-octo-happiness/internal/config"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/Den2856/sturdy-octo-happiness/internal/events"
	"github.com/Den2856/sturdy-octo-happiness/internal/mailer"
	"github.com/Den2856/sturdy-octo-happiness/internal/repository"
	appvalidator "github.com/Den2856/sturdy-octo-happiness/internal/validator"
	"github.com/Den2856/sturdy-octo-happiness/internal/vcs"
	"github.com/Den2856/sturdy-octo-happiness/internal/verification"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    config.Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	mailer    mailer.Mailer
	tokens    *auth.Issuer
	gate      *verification.Gate
	publisher events.Publisher
	metrics   *metrics
	wg        sync.WaitGroup

	userRepo    domain.UserRepository
	movieRepo   domain.MovieRepository
	theaterRepo domain.TheaterRepository
	seatRepo    domain.SeatRepository
	orderRepo   domain.OrderRepository
}

func Run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	if cfg.DisplayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Telemetry needs a logger before the providers exist, so the bootstrap
	// application only carries config and logger.
	shutdownTelemetry, err := (&Application{config: cfg, logger: logger}).InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(
			logger.Handler(),
			otelslog.NewHandler("sturdy-octo-happiness"),
		))
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AmqpUrl != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AmqpUrl)
		if err != nil {
			return err
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		publisher,
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresTheaterRepository(db),
		repository.NewPostgresSeatRepository(db),
		repository.NewPostgresOrderRepository(db),
	)

	return app.run()
}

func NewApp(
	cfg config.Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	publisher events.Publisher,
	userRepo domain.UserRepository,
	movieRepo domain.MovieRepository,
	theaterRepo domain.TheaterRepository,
	seatRepo domain.SeatRepository,
	orderRepo domain.OrderRepository,
) *Application {
	gateOpts := []verification.Option{verification.WithLogger(logger)}
	if cfg.Verification.CodeTTL > 0 {
		gateOpts = append(gateOpts, verification.WithTTL(cfg.Verification.CodeTTL))
	}
	if redisClient != nil && cfg.Verification.ResendCooldown > 0 {
		gateOpts = append(gateOpts, verification.WithThrottle(
			verification.NewRedisThrottle(redisClient, cfg.Verification.ResendCooldown),
		))
	}
	if redisClient != nil && cfg.Verification.MaxAttempts > 0 {
		window := cfg.Verification.CodeTTL
		if window <= 0 {
			window = domain.VerificationCodeTTL
		}
		gateOpts = append(gateOpts, verification.WithAttemptLimiter(
			verification.NewRedisAttemptLimiter(redisClient, cfg.Verification.MaxAttempts, window),
		))
	}

	return &Application{
		config:      cfg,
		logger:      logger,
		db:          db,
		redis:       redisClient,
		validator:   validator,
		mailer:      mailer,
		tokens:      auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL),
		gate:        verification.NewGate(userRepo, mailer, gateOpts...),
		publisher:   publisher,
		metrics:     newMetrics(),
		userRepo:    userRepo,
		movieRepo:   movieRepo,
		theaterRepo: theaterRepo,
		seatRepo:    seatRepo,
		orderRepo:   orderRepo,
	}
}

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg config.Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

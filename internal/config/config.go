// Package config loads the runtime configuration of the API server.
//
// Every setting is a command-line flag. Flags default to the matching
// environment variable, and a .env file in the working directory is loaded
// into the environment first when present.
package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int
	Env  string

	DB struct {
		DSN          string
		MaxOpenConns int
		MaxIdleTime  time.Duration
	}

	Redis struct {
		URL          string
		MaxOpenConns int
		MaxIdleConns int
		MaxIdleTime  time.Duration
	}

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		Sender   string
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Verification struct {
		CodeTTL        time.Duration
		ResendCooldown time.Duration
		MaxAttempts    int
	}

	AdminInviteCode  string
	CorsOrigins      []string
	AmqpUrl          string
	OtelCollectorUrl string

	DisplayVersion bool
}

// Load parses args (without the program name) into a Config.
func Load(args []string) (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config

	flags := flag.NewFlagSet("api", flag.ContinueOnError)

	flags.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	flags.StringVar(&cfg.Env, "env", env("APP_ENV", "dev"), "Environment (dev|staging|prod)")

	flags.StringVar(&cfg.DB.DSN, "db-dsn", env("DB_DSN", ""), "PostgreSQL DSN")
	flags.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	flags.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	flags.StringVar(&cfg.Redis.URL, "redis-url", env("REDIS_URL", ""), "Redis address")
	flags.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	flags.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	flags.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	flags.StringVar(&cfg.SMTP.Host, "smtp-host", env("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	flags.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flags.StringVar(&cfg.SMTP.Username, "smtp-username", env("SMTP_USERNAME", ""), "SMTP username")
	flags.StringVar(&cfg.SMTP.Password, "smtp-password", env("SMTP_PASSWORD", ""), "SMTP password")
	flags.StringVar(&cfg.SMTP.Sender, "smtp-sender", env("SMTP_SENDER", "Cinema Tickets <no-reply@tickets.local>"), "SMTP sender")

	flags.StringVar(&cfg.JWT.Secret, "jwt-secret", env("JWT_SECRET", ""), "HMAC secret used to sign access tokens")
	flags.DurationVar(&cfg.JWT.TTL, "jwt-ttl", envDuration("JWT_TTL", 7*24*time.Hour), "Access token lifetime")

	flags.DurationVar(&cfg.Verification.CodeTTL, "code-ttl", envDuration("CODE_TTL", 10*time.Minute), "Verification code lifetime")
	flags.DurationVar(&cfg.Verification.ResendCooldown, "code-resend-cooldown", envDuration("CODE_RESEND_COOLDOWN", time.Minute), "Minimum interval between two codes for one email")
	flags.IntVar(&cfg.Verification.MaxAttempts, "code-max-attempts", envInt("CODE_MAX_ATTEMPTS", 5), "Wrong codes allowed per email before checks are refused")

	flags.StringVar(&cfg.AdminInviteCode, "admin-invite-code", env("ADMIN_INVITE_CODE", ""), "Invite code required to register an admin")
	flags.StringVar(&cfg.AmqpUrl, "amqp-url", env("AMQP_URL", ""), "RabbitMQ URL for order events (disabled when empty)")
	flags.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", env("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	flags.Func("cors-origins", "Comma separated list of trusted CORS origins", func(val string) error {
		cfg.CorsOrigins = splitList(val)
		return nil
	})
	cfg.CorsOrigins = splitList(env("CORS_ORIGINS", "http://localhost:5173"))

	flags.BoolVar(&cfg.DisplayVersion, "version", false, "Display version and exit")

	err = flags.Parse(args)
	if err != nil {
		return Config{}, err
	}

	if !cfg.DisplayVersion && cfg.JWT.Secret == "" {
		return Config{}, errors.New("jwt secret must be provided")
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(env(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(env(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(val string) []string {
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

package integration_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	migrationsSource = "file://../../migrations"
	startupTimeout   = 60 * time.Second
)

// containers is the postgres and redis pair one suite runs against. The
// database is migrated before startContainers returns.
type containers struct {
	postgres  *postgres.PostgresContainer
	redis     *tcredis.RedisContainer
	dbDSN     string
	redisAddr string
}

func startContainers(ctx context.Context) (*containers, error) {
	c := &containers{}

	err := c.startPostgres(ctx)
	if err == nil {
		err = c.startRedis(ctx)
	}
	if err != nil {
		c.terminate()
		return nil, err
	}

	return c, nil
}

func (c *containers) startPostgres(ctx context.Context) error {
	ready := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			dbUser, dbPassword, host, port.Port(), dbName)
	}

	pg, err := postgres.Run(ctx, dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
			wait.ForSQL("5432/tcp", "pgx", ready).WithStartupTimeout(startupTimeout),
		),
	)
	if err != nil {
		return fmt.Errorf("start postgres: %w", err)
	}
	c.postgres = pg

	c.dbDSN, err = pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("postgres connection string: %w", err)
	}

	return migrateUp(c.dbDSN)
}

func (c *containers) startRedis(ctx context.Context) error {
	rc, err := tcredis.Run(ctx, cacheImageName)
	if err != nil {
		return fmt.Errorf("start redis: %w", err)
	}
	c.redis = rc

	// go-redis wants host:port, not the redis:// URL.
	c.redisAddr, err = rc.Endpoint(ctx, "")
	if err != nil {
		return fmt.Errorf("redis endpoint: %w", err)
	}

	return nil
}

func (c *containers) terminate() {
	if c.postgres != nil {
		if err := testcontainers.TerminateContainer(c.postgres); err != nil {
			log.Printf("failed to terminate postgres: %s", err)
		}
	}
	if c.redis != nil {
		if err := testcontainers.TerminateContainer(c.redis); err != nil {
			log.Printf("failed to terminate redis: %s", err)
		}
	}
}

func migrateUp(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsSource, dbName, driver)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

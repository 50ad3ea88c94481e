//go:build integration_test

package testinternals

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/2beens/healthtrack/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const testDBName = "healthtrack"

// Postgres is a throwaway postgres container with the schema applied.
type Postgres struct {
	Pool *pgxpool.Pool
	DSN  string

	dockerPool *dockertest.Pool
	resource   *dockertest.Resource
}

// StartPostgres runs a postgres container, waits for it to accept connections and applies the schema.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("create dockertest pool: %w", err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("ping docker: %w", err)
	}
	dockerPool.MaxWait = 2 * time.Minute

	resource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, fmt.Errorf("dockerpool run postgres: %w", err)
	}
	// a hanging test run must not leave the container behind
	if err := resource.Expire(300); err != nil {
		log.Printf("set postgres container expiry: %s", err)
	}

	pg := &Postgres{
		DSN: fmt.Sprintf(
			"postgres://postgres@localhost:%s/%s?sslmode=disable",
			resource.GetPort("5432/tcp"), testDBName,
		),
		dockerPool: dockerPool,
		resource:   resource,
	}

	sqlDB, err := sql.Open("postgres", pg.DSN)
	if err != nil {
		pg.Close()
		return nil, fmt.Errorf("open db conn: %w", err)
	}
	defer sqlDB.Close()

	if err := dockerPool.Retry(sqlDB.Ping); err != nil {
		pg.Close()
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	if _, err := sqlDB.ExecContext(ctx, db.Schema); err != nil {
		pg.Close()
		return nil, fmt.Errorf("run schema: %w", err)
	}

	pg.Pool, err = pgxpool.New(ctx, pg.DSN)
	if err != nil {
		pg.Close()
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return pg, nil
}

func (pg *Postgres) Port() string {
	return pg.resource.GetPort("5432/tcp")
}

// Truncate empties the given tables and resets their id sequences.
func (pg *Postgres) Truncate(ctx context.Context, tables ...string) error {
	_, err := pg.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE;", strings.Join(tables, ", ")))
	return err
}

func (pg *Postgres) Close() {
	if pg.Pool != nil {
		pg.Pool.Close()
	}
	if err := pg.dockerPool.Purge(pg.resource); err != nil {
		log.Printf("postgres teardown: %s", err)
	}
}

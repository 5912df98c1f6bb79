//go:build integration
// +build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"PayFlow/internal/flow"
	"PayFlow/pkg/postgres"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:17-alpine"
	pgUser     = "payflow"
	pgPassword = "payflow"
	pgDatabase = "payflow_test"
	pgPort     = nat.Port("5432/tcp")
)

// PostgresContainer is a migrated flow_state database.
type PostgresContainer struct {
	Container testcontainers.Container
	Pool      *postgres.Postgres
	DSN       string
}

func pgDSN(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port.Port(), pgDatabase)
}

func NewPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: pgImage,
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			ExposedPorts: []string{string(pgPort)},
			WaitingFor:   wait.ForSQL(pgPort, "postgres", pgDSN).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}
	c := &PostgresContainer{Container: container}

	host, err := container.Host(ctx)
	if err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, pgPort)
	if err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("mapped port: %w", err)
	}
	c.DSN = pgDSN(host, port)

	if err := flow.ApplyMigrations(c.DSN, flow.MIGRATION_FS); err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	c.Pool, err = postgres.New(c.DSN, postgres.MaxPoolSize(4))
	if err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("open pool: %w", err)
	}
	return c, nil
}

func (c *PostgresContainer) Cleanup(ctx context.Context) {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Container != nil {
		_ = c.Container.Terminate(ctx)
	}
}

// Truncate empties flow_state between tests.
func (c *PostgresContainer) Truncate(ctx context.Context) error {
	_, err := c.Pool.Pool.Exec(ctx, "TRUNCATE TABLE flow_state")
	return err
}

//go:build integration
// +build integration

// Package testinfra starts the storage backends of the flow state store in
// containers for integration suites.
package testinfra

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type TestSuite struct {
	Postgres *PostgresContainer
	Redis    *RedisContainer
}

type SuiteOptions struct {
	WithPostgres bool
	WithRedis    bool
}

// NewTestSuite starts the requested containers concurrently. When one fails,
// the ones that did start are terminated.
func NewTestSuite(ctx context.Context, opts SuiteOptions) (*TestSuite, error) {
	suite := &TestSuite{}
	g, gctx := errgroup.WithContext(ctx)

	if opts.WithPostgres {
		g.Go(func() error {
			pg, err := NewPostgres(gctx)
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			suite.Postgres = pg
			return nil
		})
	}
	if opts.WithRedis {
		g.Go(func() error {
			r, err := NewRedis(gctx)
			if err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			suite.Redis = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		suite.Cleanup(ctx)
		return nil, fmt.Errorf("start containers: %w", err)
	}
	return suite, nil
}

func (s *TestSuite) Cleanup(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Cleanup(ctx)
	}
	if s.Postgres != nil {
		s.Postgres.Cleanup(ctx)
	}
}

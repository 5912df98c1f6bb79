//go:build integration
// +build integration

package flowstate_repo_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"PayFlow/internal/repo/flowstate"
	"PayFlow/internal/store"
	"PayFlow/internal/testinfra"
	"PayFlow/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suite *testinfra.TestSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testinfra.NewTestSuite(ctx, testinfra.SuiteOptions{WithPostgres: true, WithRedis: true})
	if err != nil {
		panic(fmt.Sprintf("Failed to start test suite: %v", err))
	}

	code := m.Run()

	suite.Cleanup(ctx)
	os.Exit(code)
}

func backends(t *testing.T) map[string]store.Backend {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, suite.Postgres.Truncate(ctx))
	require.NoError(t, suite.Redis.Flush(ctx))

	return map[string]store.Backend{
		"postgres": flowstate_repo.NewPgFlowStateRepo(suite.Postgres.Pool),
		"redis":    flowstate_repo.NewRedisFlowStateRepo(suite.Redis.Client, time.Hour),
	}
}

func TestBackends_RoundTrip(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := backend.Load(ctx, "missing")
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, backend.Save(ctx, "k", []byte(`{"a":1}`)))
			require.NoError(t, backend.Save(ctx, "k", []byte(`{"a":2}`)))

			data, err := backend.Load(ctx, "k")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(data))

			require.NoError(t, backend.Delete(ctx, "k"))
			_, err = backend.Load(ctx, "k")
			assert.ErrorIs(t, err, store.ErrNotFound)

			assert.NoError(t, backend.Ping(ctx))
		})
	}
}

func TestBackends_Gateway(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			g := store.New(backend, store.DefaultKey, logger.Nop()).Gateway("flow-" + name)

			require.NoError(t, g.Set(ctx, store.FieldEncryptedData, "payload"))
			require.NoError(t, g.Set(ctx, store.FieldAccountOnFileID, "t1"))

			assert.Equal(t, "payload", *g.EncryptedData(ctx))
			assert.Equal(t, "t1", *g.AccountOnFileID(ctx))

			require.NoError(t, g.ClearAll(ctx))
			assert.Nil(t, g.EncryptedData(ctx))
		})
	}
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")

	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, backend.Ping(ctx))

	// missing
	_, err = backend.Load(ctx, "sdk-example-app-storage:flow/1")
	assert.ErrorIs(t, err, ErrNotFound)

	// save and load
	require.NoError(t, backend.Save(ctx, "sdk-example-app-storage:flow/1", []byte(`{"a":1}`)))
	got, err := backend.Load(ctx, "sdk-example-app-storage:flow/1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	// key is escaped into a single file name
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// delete is idempotent
	require.NoError(t, backend.Delete(ctx, "sdk-example-app-storage:flow/1"))
	require.NoError(t, backend.Delete(ctx, "sdk-example-app-storage:flow/1"))
	_, err = backend.Load(ctx, "sdk-example-app-storage:flow/1")
	assert.ErrorIs(t, err, ErrNotFound)
}

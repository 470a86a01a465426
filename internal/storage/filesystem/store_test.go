package filesystem

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/counterparty-client/internal/model"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "blobs")

	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Upload(ctx, "key1", strings.NewReader("first")))
	require.NoError(t, s.Upload(ctx, "key1", strings.NewReader("second")))

	info, err := os.Stat(filepath.Join(dir, "key1"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	rc, err := s.Download(ctx, "key1")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "second", string(data))

	ok, err := s.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "key1"))
	require.NoError(t, s.Delete(ctx, "key1"))

	ok, err = s.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Download_NotFound(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Download(context.Background(), "absent")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStore_InvalidKey(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../escape", "nested/key"} {
		assert.Error(t, s.Upload(ctx, key, strings.NewReader("x")), key)
		_, err := s.Download(ctx, key)
		assert.Error(t, err, key)
	}
}

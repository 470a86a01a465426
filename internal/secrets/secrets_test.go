package secrets

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/counterparty-client/internal/mocks"
	"github.com/dtroode/counterparty-client/internal/model"
	"github.com/dtroode/counterparty-client/internal/storage/filesystem"
)

func newSealedStore(t *testing.T) (*SealedStore, string) {
	t.Helper()

	dir := t.TempDir()
	blobs, err := filesystem.NewStore(filepath.Join(dir, "secrets"))
	require.NoError(t, err)
	identity, err := LoadOrCreateIdentity(filepath.Join(dir, "identity.txt"))
	require.NoError(t, err)

	return NewSealedStore(blobs, identity), filepath.Join(dir, "secrets")
}

func TestSealedStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, dir := newSealedStore(t)

	require.NoError(t, store.Save(ctx, "access_token", "eyJhbGciOi.payload.sig"))

	got, err := store.Read(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOi.payload.sig", got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, objectName("access_token"), entries[0].Name())

	raw, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.False(t, bytes.Contains(raw, []byte("payload")))

	require.NoError(t, store.Delete(ctx, "access_token"))
	_, err = store.Read(ctx, "access_token")
	assert.ErrorIs(t, err, model.ErrSecretNotFound)
}

func TestSealedStore_DeleteMissing(t *testing.T) {
	store, _ := newSealedStore(t)
	assert.NoError(t, store.Delete(context.Background(), "refresh_token"))
}

func TestSealedStore_WrongIdentity(t *testing.T) {
	ctx := context.Background()
	store, dir := newSealedStore(t)
	require.NoError(t, store.Save(ctx, "k", "v"))

	other, err := age.GenerateX25519Identity()
	require.NoError(t, err)
	blobs, err := filesystem.NewStore(dir)
	require.NoError(t, err)

	_, err = NewSealedStore(blobs, other).Read(ctx, "k")
	assert.ErrorIs(t, err, model.ErrSecretReadFailed)
}

func TestSealedStore_StorageErrors(t *testing.T) {
	ctx := context.Background()
	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	blobs := mocks.NewBlobStorage(t)
	blobs.On("Upload", ctx, objectName("k"), mock.Anything).Return(errors.New("disk full")).Once()
	blobs.On("Download", ctx, objectName("k")).Return(nil, errors.New("io")).Once()
	blobs.On("Exists", ctx, objectName("k")).Return(true, nil).Once()
	blobs.On("Delete", ctx, objectName("k")).Return(errors.New("io")).Once()

	store := NewSealedStore(blobs, identity)

	assert.ErrorIs(t, store.Save(ctx, "k", "v"), model.ErrSecretSaveFailed)
	_, err = store.Read(ctx, "k")
	assert.ErrorIs(t, err, model.ErrSecretReadFailed)
	assert.ErrorIs(t, store.Delete(ctx, "k"), model.ErrSecretDeleteFailed)
}

func TestSealedStore_DeleteChecksPresence(t *testing.T) {
	ctx := context.Background()
	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	t.Run("absent", func(t *testing.T) {
		blobs := mocks.NewBlobStorage(t)
		blobs.On("Exists", ctx, objectName("k")).Return(false, nil).Once()

		assert.NoError(t, NewSealedStore(blobs, identity).Delete(ctx, "k"))
		blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("lookup fails", func(t *testing.T) {
		blobs := mocks.NewBlobStorage(t)
		blobs.On("Exists", ctx, objectName("k")).Return(false, errors.New("timeout")).Once()

		assert.ErrorIs(t, NewSealedStore(blobs, identity).Delete(ctx, "k"), model.ErrSecretDeleteFailed)
	})
}

func TestLoadOrCreateIdentity_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "identity.txt")

	first, err := LoadOrCreateIdentity(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrCreateIdentity(path)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestLoadOrCreateIdentity_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an identity\n"), 0o600))

	_, err := LoadOrCreateIdentity(path)
	assert.Error(t, err)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Read(ctx, "k")
	assert.ErrorIs(t, err, model.ErrSecretNotFound)

	require.NoError(t, m.Save(ctx, "k", "v1"))
	require.NoError(t, m.Save(ctx, "k", "v2"))
	got, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Read(ctx, "k")
	assert.ErrorIs(t, err, model.ErrSecretNotFound)
}


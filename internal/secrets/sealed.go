// Package secrets implements model.SecretStore backends.
package secrets

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"filippo.io/age"

	"github.com/dtroode/counterparty-client/internal/model"
)

var _ model.SecretStore = (*SealedStore)(nil)

// SealedStore encrypts each secret to an age identity and keeps the
// ciphertext in a blob storage. Object names are derived from a hash of the
// key so that key names do not leak into the storage layout.
type SealedStore struct {
	blobs    model.BlobStorage
	identity *age.X25519Identity

	mu sync.RWMutex
}

// NewSealedStore creates a store sealing to identity's recipient.
func NewSealedStore(blobs model.BlobStorage, identity *age.X25519Identity) *SealedStore {
	return &SealedStore{
		blobs:    blobs,
		identity: identity,
	}
}

func objectName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:]) + ".age"
}

func (s *SealedStore) Save(ctx context.Context, key, value string) error {
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, s.identity.Recipient())
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrSecretSaveFailed, err)
	}
	if _, err := io.WriteString(w, value); err != nil {
		return fmt.Errorf("%w: %w", model.ErrSecretSaveFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrSecretSaveFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blobs.Upload(ctx, objectName(key), &buf); err != nil {
		return fmt.Errorf("%w: %w", model.ErrSecretSaveFailed, err)
	}
	return nil
}

// Read returns model.ErrSecretNotFound for a missing key and
// model.ErrSecretReadFailed for storage or decryption failures.
func (s *SealedStore) Read(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rc, err := s.blobs.Download(ctx, objectName(key))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrSecretNotFound
		}
		return "", fmt.Errorf("%w: %w", model.ErrSecretReadFailed, err)
	}
	defer rc.Close()

	r, err := age.Decrypt(rc, s.identity)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrSecretReadFailed, err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrSecretReadFailed, err)
	}

	return string(plaintext), nil
}

// Delete removes the secret. An absent key is a no-op.
func (s *SealedStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := objectName(key)
	ok, err := s.blobs.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrSecretDeleteFailed, err)
	}
	if !ok {
		return nil
	}

	if err := s.blobs.Delete(ctx, name); err != nil {
		return fmt.Errorf("%w: %w", model.ErrSecretDeleteFailed, err)
	}
	return nil
}

package model

import (
	"context"
	"io"
)

// BlobStorage is a flat key/value object store.
type BlobStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SecretStore persists raw secret strings. Delete of an absent key succeeds.
type SecretStore interface {
	Save(ctx context.Context, key, value string) error
	Read(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ContractorStore is the local contractor cache.
type ContractorStore interface {
	// List returns all contractors ordered by name.
	List(ctx context.Context) ([]Contractor, error)
	GetByID(ctx context.Context, id ContractorID) (Contractor, error)
	Upsert(ctx context.Context, contractor Contractor) error
	Delete(ctx context.Context, id ContractorID) error
	// Apply writes the batch atomically.
	Apply(ctx context.Context, batch ContractorBatch) error
}

// Package storage provides the key/value backends that persist the
// workbench session between runs: SQLite (default), the OS keyring, and an
// in-memory map for tests and throwaway shells.
package storage

import "context"

// Repository is a small key/value store.
//
// Get returns (nil, nil) for a missing key. Delete and Clear are idempotent.
// SetAll writes every pair or none of them.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

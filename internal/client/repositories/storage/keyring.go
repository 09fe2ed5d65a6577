package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the keychain service name items are filed under.
const DefaultKeyringService = "ai-workbench"

// KeyringRepository stores each key as a separate item in the OS
// keychain/credential manager. The keyring API cannot enumerate items, so
// the repository only manages the keys it was constructed with.
type KeyringRepository struct {
	service string
	keys    []string
}

// NewKeyringRepository manages the given keys under service.
func NewKeyringRepository(service string, keys ...string) *KeyringRepository {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringRepository{service: service, keys: keys}
}

func (r *KeyringRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := keyring.Get(r.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get keyring[%s]: %w", key, err)
	}
	return []byte(v), nil
}

func (r *KeyringRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := keyring.Set(r.service, key, string(value)); err != nil {
		return fmt.Errorf("failed to set keyring[%s]: %w", key, err)
	}
	return nil
}

// SetAll writes the pairs one by one and removes what it wrote if a later
// write fails, so a partial session is never left behind.
func (r *KeyringRepository) SetAll(ctx context.Context, values map[string][]byte) error {
	written := make([]string, 0, len(values))
	for k, v := range values {
		if err := r.Set(ctx, k, v); err != nil {
			for _, w := range written {
				_ = r.Delete(ctx, w)
			}
			return err
		}
		written = append(written, k)
	}
	return nil
}

func (r *KeyringRepository) Delete(ctx context.Context, key string) error {
	err := keyring.Delete(r.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete keyring[%s]: %w", key, err)
	}
	return nil
}

func (r *KeyringRepository) Clear(ctx context.Context) error {
	var errs []error
	for _, k := range r.keys {
		if err := r.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

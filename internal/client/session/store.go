// Package session maps the workbench session onto a storage.Repository:
// the opaque token under "auth_token" and the JSON user record under "user".
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/client/repositories/storage"
	"github.com/dmitrijs2005/aiworkbench/internal/common"
)

var (
	// ErrNoSession means at least one of the two keys is absent.
	ErrNoSession = errors.New("no stored session")
	// ErrCorrupt means the stored user record does not parse or validate.
	ErrCorrupt = errors.New("stored session is corrupt")
)

// Store reads and writes the persisted session.
type Store struct {
	repo storage.Repository
}

func NewStore(repo storage.Repository) *Store {
	return &Store{repo: repo}
}

// Load returns the persisted session. It fails with ErrNoSession when either
// key is missing and with ErrCorrupt when the user record is unusable;
// storage failures are returned wrapped.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	rawUser, err := s.repo.Get(ctx, common.UserKey)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	token, err := s.repo.Get(ctx, common.AuthTokenKey)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if len(rawUser) == 0 || len(token) == 0 {
		return nil, ErrNoSession
	}

	var u models.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return &models.Session{User: u, Token: string(token)}, nil
}

// Save persists both keys in one write.
func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	err = s.repo.SetAll(ctx, map[string][]byte{
		common.AuthTokenKey: []byte(sess.Token),
		common.UserKey:      rawUser,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes both keys. It is safe to call when nothing is stored.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

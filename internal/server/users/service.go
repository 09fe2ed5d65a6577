// Package users is the stub provider's user directory: accounts seeded from
// configuration with argon2id password hashes.
package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/common"
	"github.com/dmitrijs2005/aiworkbench/internal/cryptox"
	"github.com/dmitrijs2005/aiworkbench/internal/server/config"
	"github.com/google/uuid"
)

type account struct {
	user models.User
	hash cryptox.PasswordHash
}

// Service authenticates users and looks them up by id.
type Service struct {
	mu     sync.RWMutex
	byName map[string]*account
	byID   map[string]*account
	now    func() time.Time

	// dummy is verified against when a username is unknown, so both paths
	// cost one key derivation.
	dummy cryptox.PasswordHash
}

// NewService builds the directory from seeds. Seeds without an id get a
// random uuid; duplicate usernames or ids, unknown roles and unusable
// password settings are rejected.
func NewService(seeds []config.UserSeed) (*Service, error) {
	s := &Service{
		byName: make(map[string]*account, len(seeds)),
		byID:   make(map[string]*account, len(seeds)),
		now:    time.Now,
		dummy:  cryptox.HashPassword([]byte("dummy")),
	}

	created := s.now().UTC()
	for i, seed := range seeds {
		a, err := newAccount(seed, created)
		if err != nil {
			return nil, fmt.Errorf("user #%d (%q): %w", i+1, seed.Username, err)
		}
		if _, dup := s.byName[a.user.Username]; dup {
			return nil, fmt.Errorf("duplicate username %q", a.user.Username)
		}
		if _, dup := s.byID[a.user.ID]; dup {
			return nil, fmt.Errorf("duplicate user id %q", a.user.ID)
		}
		s.byName[a.user.Username] = a
		s.byID[a.user.ID] = a
	}
	return s, nil
}

func newAccount(seed config.UserSeed, created time.Time) (*account, error) {
	if seed.Username == "" {
		return nil, fmt.Errorf("username is empty")
	}

	var hash cryptox.PasswordHash
	switch {
	case seed.Password != "" && seed.PasswordHash != "":
		return nil, fmt.Errorf("both password and password_hash are set")
	case seed.Password != "":
		hash = cryptox.HashPassword([]byte(seed.Password))
	case seed.PasswordHash != "":
		h, err := cryptox.ParsePasswordHash(seed.PasswordHash)
		if err != nil {
			return nil, err
		}
		hash = h
	default:
		return nil, fmt.Errorf("no password configured")
	}

	id := seed.ID
	if id == "" {
		id = uuid.NewString()
	}

	u := models.User{
		ID:        id,
		Username:  seed.Username,
		Email:     seed.Email,
		Role:      models.Role(seed.Role),
		CreatedAt: created,
		UpdatedAt: created,
	}
	if seed.DisplayName != "" || seed.Department != "" {
		u.Profile = &models.Profile{DisplayName: seed.DisplayName, Department: seed.Department}
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	return &account{user: u, hash: hash}, nil
}

// Login checks the credentials and returns a copy of the user record with
// LastLoginAt updated. Unknown users and wrong passwords both yield
// common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	s.mu.RLock()
	a, ok := s.byName[username]
	s.mu.RUnlock()

	if !ok {
		s.dummy.Verify([]byte(password))
		return nil, common.ErrorUnauthorized
	}
	if !a.hash.Verify([]byte(password)) {
		return nil, common.ErrorUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a.user.LastLoginAt = s.now().UTC()
	u := a.user
	return &u, nil
}

// GetByID returns a copy of the user with id or common.ErrorNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := a.user
	return &u, nil
}

// Len returns the number of accounts.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

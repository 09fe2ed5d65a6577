package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/common"
	"github.com/dmitrijs2005/aiworkbench/internal/cryptox"
	"github.com/dmitrijs2005/aiworkbench/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	s, err := NewService([]config.UserSeed{
		{ID: "1", Username: "alice", Role: "admin", Password: "pw", DisplayName: "Alice"},
		{Username: "bob", Role: "standard_user", PasswordHash: cryptox.HashPassword([]byte("hunter2")).String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	u, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, "Alice", u.DisplayName())
	assert.False(t, u.LastLoginAt.IsZero())

	u, err = s.Login(ctx, "bob", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID, "missing ids are generated")

	_, err = s.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "mallory", "pw")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestService_GetByID(t *testing.T) {
	s, err := NewService([]config.UserSeed{{ID: "1", Username: "alice", Role: "admin", Password: "pw"}})
	require.NoError(t, err)

	u, err := s.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	u.Username = "changed"
	again, _ := s.GetByID(context.Background(), "1")
	assert.Equal(t, "alice", again.Username, "callers get copies")

	_, err = s.GetByID(context.Background(), "2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNewService_RejectsBadSeeds(t *testing.T) {
	tests := []struct {
		name  string
		seeds []config.UserSeed
	}{
		{"no username", []config.UserSeed{{Role: "admin", Password: "x"}}},
		{"no password", []config.UserSeed{{Username: "a", Role: "admin"}}},
		{"both passwords", []config.UserSeed{{Username: "a", Role: "admin", Password: "x", PasswordHash: "argon2id$a$b"}}},
		{"bad hash", []config.UserSeed{{Username: "a", Role: "admin", PasswordHash: "plain"}}},
		{"unknown role", []config.UserSeed{{Username: "a", Role: "root", Password: "x"}}},
		{"duplicate username", []config.UserSeed{
			{ID: "1", Username: "a", Role: "admin", Password: "x"},
			{ID: "2", Username: "a", Role: "admin", Password: "y"},
		}},
		{"duplicate id", []config.UserSeed{
			{ID: "1", Username: "a", Role: "admin", Password: "x"},
			{ID: "1", Username: "b", Role: "admin", Password: "y"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.seeds)
			assert.Error(t, err)
		})
	}
}

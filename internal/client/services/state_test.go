package services

import (
	"testing"

	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	u := &models.User{ID: "1", Username: "alice", Role: models.RoleAdmin}
	loading := State{Status: StatusLoading}
	authed := State{Status: StatusAuthenticated, User: u}
	anon := State{Status: StatusUnauthenticated}

	tests := []struct {
		name string
		from State
		ev   Event
		want State
	}{
		{"start from loading", loading, Event{Type: EventStart}, loading},
		{"start from authenticated", authed, Event{Type: EventStart}, loading},
		{"start from unauthenticated", anon, Event{Type: EventStart}, loading},

		{"success from loading", loading, Event{Type: EventSuccess, User: u}, authed},
		{"success without user ignored", loading, Event{Type: EventSuccess}, loading},
		{"success from unauthenticated ignored", anon, Event{Type: EventSuccess, User: u}, anon},
		{"success from authenticated ignored", authed, Event{Type: EventSuccess, User: &models.User{ID: "2"}}, authed},

		{"failure from loading", loading, Event{Type: EventFailure}, anon},
		{"failure from authenticated", authed, Event{Type: EventFailure}, anon},
		{"failure from unauthenticated", anon, Event{Type: EventFailure}, anon},

		{"logout from authenticated", authed, Event{Type: EventLogout}, anon},
		{"logout from loading ignored", loading, Event{Type: EventLogout}, loading},
		{"logout from unauthenticated", anon, Event{Type: EventLogout}, anon},

		{"unknown event ignored", authed, Event{Type: "BOGUS"}, authed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.from, tt.ev))
		})
	}
}

func TestState_Helpers(t *testing.T) {
	assert.True(t, InitialState().Loading())
	assert.False(t, InitialState().Authenticated())
	assert.False(t, State{Status: StatusAuthenticated}.Authenticated())

	u := &models.User{ID: "1", Profile: &models.Profile{DisplayName: "A"}}
	s := State{Status: StatusAuthenticated, User: u}
	c := s.clone()
	c.User.Profile.DisplayName = "B"
	c.User.ID = "2"
	assert.Equal(t, "A", u.Profile.DisplayName)
	assert.Equal(t, "1", u.ID)
}

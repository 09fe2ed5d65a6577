package services

import "github.com/dmitrijs2005/aiworkbench/internal/client/models"

// Status is the coarse authentication status.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// State is the authentication state owned by AuthController. User is
// non-nil exactly when Status is StatusAuthenticated.
type State struct {
	Status Status
	User   *models.User
}

// Authenticated reports whether the state carries a signed-in user.
func (s State) Authenticated() bool { return s.Status == StatusAuthenticated && s.User != nil }

// Loading reports whether no decision has been made yet.
func (s State) Loading() bool { return s.Status == StatusLoading }

// clone returns a copy that shares no memory with s.
func (s State) clone() State {
	if s.User == nil {
		return s
	}
	u := *s.User
	if u.Profile != nil {
		p := *u.Profile
		u.Profile = &p
	}
	return State{Status: s.Status, User: &u}
}

// EventType names a state transition request.
type EventType string

const (
	EventStart   EventType = "START"
	EventSuccess EventType = "SUCCESS"
	EventFailure EventType = "FAILURE"
	EventLogout  EventType = "LOGOUT"
)

// Event is a transition request. User is only meaningful for EventSuccess.
type Event struct {
	Type EventType
	User *models.User
}

// InitialState is the state before bootstrap has decided anything.
func InitialState() State { return State{Status: StatusLoading} }

// Reduce computes the next state. It is pure: it never touches storage or
// the network. Events that are not valid from s leave s unchanged.
//
//	START    any             -> loading
//	SUCCESS  loading         -> authenticated(user)
//	FAILURE  loading, authed -> unauthenticated
//	LOGOUT   authenticated   -> unauthenticated
func Reduce(s State, e Event) State {
	switch e.Type {
	case EventStart:
		return State{Status: StatusLoading}
	case EventSuccess:
		if s.Status == StatusLoading && e.User != nil {
			return State{Status: StatusAuthenticated, User: e.User}
		}
	case EventFailure:
		if s.Status == StatusLoading || s.Status == StatusAuthenticated {
			return State{Status: StatusUnauthenticated}
		}
	case EventLogout:
		if s.Status == StatusAuthenticated {
			return State{Status: StatusUnauthenticated}
		}
	}
	return s
}

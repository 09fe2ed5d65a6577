package models

// Session pairs an authenticated user with the opaque access token the
// provider issued for it. At most one session exists per storage scope.
type Session struct {
	User  User
	Token string
}

// Package common contains constants and sentinel errors shared by the
// workbench client and the stub authentication provider.
package common

// Session storage keys. The values are part of the on-disk contract: a store
// written by one build must be readable by the next.
const (
	AuthTokenKey = "auth_token"
	UserKey      = "user"
)

// HTTP headers used between the workbench and the authentication provider.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
)

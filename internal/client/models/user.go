// Package models defines the workbench's client-side data model: the user
// record issued by the authentication provider and the session pairing it
// with an access token.
package models

import (
	"errors"
	"fmt"
	"time"
)

// Role classifies a user's privileges in the workbench.
type Role string

const (
	// RoleAdmin is the elevated role allowed on administrative routes.
	RoleAdmin Role = "admin"
	// RoleStandard is the regular operator role.
	RoleStandard Role = "standard_user"
)

var (
	ErrMissingUserID = errors.New("user record has no id")
	ErrUnknownRole   = errors.New("user record has unknown role")
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandard
}

// Elevated reports whether r grants access to administrative routes.
func (r Role) Elevated() bool {
	return r == RoleAdmin
}

// Profile carries optional presentation metadata.
type Profile struct {
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Department  string `json:"department,omitempty" yaml:"department,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
}

// User is the identity record issued by the authentication provider. It is
// treated as immutable for the lifetime of a session and replaced wholesale
// on re-login.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Profile     *Profile  `json:"profile,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
	LastLoginAt time.Time `json:"last_login_at,omitzero"`
}

// Validate rejects records that cannot back an authenticated session.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrMissingUserID
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, u.Role)
	}
	return nil
}

// DisplayName prefers the profile name and falls back to the username.
func (u *User) DisplayName() string {
	if u.Profile != nil && u.Profile.DisplayName != "" {
		return u.Profile.DisplayName
	}
	return u.Username
}

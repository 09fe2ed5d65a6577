// Package api defines the HTTP contract between the workbench and its
// authentication provider. Every response is wrapped in Envelope.
package api

import (
	"encoding/json"

	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
)

const (
	PathLogin  = "/api/auth/login"
	PathLogout = "/api/auth/logout"
	PathMe     = "/api/auth/me"
	PathHealth = "/api/health"
)

// Envelope is the response wrapper: Success tells whether the call was
// accepted; Data carries the payload and Message a human-readable reason.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// LoginRequest is the body of PathLogin.
type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// LoginData is the Data payload of a successful login.
type LoginData struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

package client

import "errors"

var (
	ErrUnavailable    = errors.New("authentication service unavailable")
	ErrUnauthorized   = errors.New("invalid credentials")
	ErrSessionInvalid = errors.New("session is no longer valid")
)

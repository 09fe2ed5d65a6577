package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/aiworkbench/internal/client/client"
)

// User-facing notices.
const (
	MsgSignedIn           = "Signed in as %s"
	MsgSignedOut          = "Signed out"
	MsgInvalidCredentials = "Invalid username or password"
	MsgUnavailable        = "Unable to reach the authentication service"
	MsgSessionExpired     = "Your session has expired. Please sign in again."
	MsgSignInFailed       = "Sign-in failed"
)

// UserMessage turns a SignIn error into the text shown to the user.
// Credential rejections get a generic message; transport failures carry
// the underlying reason when there is one.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, client.ErrUnauthorized):
		return MsgInvalidCredentials
	case errors.Is(err, client.ErrUnavailable):
		detail := strings.TrimPrefix(err.Error(), client.ErrUnavailable.Error())
		detail = strings.TrimPrefix(detail, ": ")
		if detail == "" {
			return MsgUnavailable
		}
		return MsgUnavailable + ": " + detail
	default:
		return MsgSignInFailed + ": " + err.Error()
	}
}

package client

import (
	"context"

	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
)

// Client is the authentication provider as seen by the workbench.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	Ping(ctx context.Context) error
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/aiworkbench/internal/client/client"
	"github.com/dmitrijs2005/aiworkbench/internal/client/config"
	"github.com/dmitrijs2005/aiworkbench/internal/client/guard"
	"github.com/dmitrijs2005/aiworkbench/internal/client/notify"
	"github.com/dmitrijs2005/aiworkbench/internal/client/repositories/storage"
	"github.com/dmitrijs2005/aiworkbench/internal/client/services"
	"github.com/dmitrijs2005/aiworkbench/internal/client/session"
	"github.com/dmitrijs2005/aiworkbench/internal/common"
	"github.com/dmitrijs2005/aiworkbench/internal/logging"
)

// authController is what the CLI needs from services.AuthController.
type authController interface {
	Start(ctx context.Context) error
	Snapshot() services.State
	Subscribe() (<-chan services.State, func())
	SignIn(ctx context.Context, username, password string) (bool, error)
	SignOut(ctx context.Context)
	Close() error
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	ctrl     authController
	provider client.Client
	notices  *notify.Recorder
	guard    guard.Guard
	reader   *bufio.Reader
	out      io.Writer
	closers  []func() error
}

type appOptions struct {
	web bool
}

// AppOption customizes NewApp.
type AppOption func(*appOptions)

// WithWebNotices routes notices to the log and to a recorder the web shell
// drains into flash messages, instead of printing them on the terminal.
func WithWebNotices() AppOption {
	return func(o *appOptions) { o.web = true }
}

// NewApp opens the configured session store and builds the controller.
// The controller is not started; call Start.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer, opts ...AppOption) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	repo, closer, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("session store init error: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ProviderURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger.With("module", "provider_client")))

	var (
		notifier notify.Notifier = notify.NewTerminal(out)
		rec      *notify.Recorder
	)
	if o.web {
		rec = &notify.Recorder{}
		notifier = notify.Multi{notify.NewLog(logger), rec}
	}

	ctrl := services.NewAuthController(session.NewStore(repo), apiClient,
		services.WithLogger(logger),
		services.WithNotifier(notifier),
		services.WithRevalidateDelay(c.RevalidateDelay),
		services.WithBootstrapMode(services.BootstrapMode(c.BootstrapMode)))

	a := &App{
		config:   c,
		logger:   logger,
		ctrl:     ctrl,
		provider: apiClient,
		notices:  rec,
		guard:    guard.New(c.LoginPath, c.LandingPath),
		reader:   bufio.NewReader(in),
		out:      out,
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	return a, nil
}

func openStore(ctx context.Context, c *config.Config) (storage.Repository, func() error, error) {
	switch c.StoreBackend {
	case config.StoreSQLite:
		db, err := storage.OpenSQLite(ctx, c.StoreDSN)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSQLiteRepository(db), closeDB(db), nil
	case config.StoreKeyring:
		return storage.NewKeyringRepository(storage.DefaultKeyringService, common.AuthTokenKey, common.UserKey), nil, nil
	case config.StoreMemory:
		return storage.NewMemoryRepository(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
}

func closeDB(db *sql.DB) func() error { return db.Close }

// Start bootstraps the controller from the session store.
func (a *App) Start(ctx context.Context) error {
	return a.ctrl.Start(ctx)
}

// Close stops the controller and releases the store.
func (a *App) Close() error {
	err := a.ctrl.Close()
	for _, c := range a.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// checkProvider pings the authentication provider and reports whether it
// answered. An unreachable provider is only a warning: a cached session
// still works until it has to be revalidated.
func (a *App) checkProvider(ctx context.Context) bool {
	if err := a.provider.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "authentication provider unreachable", "url", a.config.ProviderURL, "err", err)
		fmt.Fprintf(a.out, "Warning: %s (%s)\n", services.UserMessage(err), a.config.ProviderURL)
		return false
	}
	a.logger.Info(ctx, "authentication provider reachable", "url", a.config.ProviderURL)
	return true
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.Snapshot().Authenticated()
}

// getStatus renders the prompt header: "(username role)" when signed in,
// "(loading)" during bootstrap, empty otherwise.
func (a *App) getStatus() string {
	st := a.ctrl.Snapshot()
	switch {
	case st.Authenticated():
		return fmt.Sprintf("(%s %s)", st.User.Username, st.User.Role)
	case st.Loading():
		return "(loading)"
	default:
		return ""
	}
}

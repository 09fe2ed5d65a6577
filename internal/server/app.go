// Package server initializes and runs the stub authentication provider.
// It builds the user directory from configuration, handles graceful
// shutdown and starts the HTTP API.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/aiworkbench/internal/logging"
	"github.com/dmitrijs2005/aiworkbench/internal/server/config"
	"github.com/dmitrijs2005/aiworkbench/internal/server/httpapi"
	"github.com/dmitrijs2005/aiworkbench/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	us, err := users.NewService(c.Users)
	if err != nil {
		return nil, fmt.Errorf("user directory init error: %w", err)
	}

	return &App{config: c, logger: logger, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpapi.NewHTTPServer(app.config.ListenAddr, app.logger, app.userService, app.config.SecretKey, app.config.TokenTTL)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "users", app.userService.Len())

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	return runErr
}

// Package httpapi serves the stub provider's JSON API over gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aiworkbench/internal/api"
	"github.com/dmitrijs2005/aiworkbench/internal/logging"
	"github.com/dmitrijs2005/aiworkbench/internal/server/auth"
	"github.com/dmitrijs2005/aiworkbench/internal/server/users"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address   string
	users     *users.Service
	revoked   *auth.Revocations
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewHTTPServer(a string, l logging.Logger, us *users.Service, secretKey string, tokenTTL time.Duration) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		revoked:   auth.NewRevocations(),
		jwtSecret: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Handler builds the gin engine with every route registered.
func (s *HTTPServer) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET(api.PathHealth, s.Health)
	r.POST(api.PathLogin, s.Login)

	authed := r.Group("/", s.accessTokenMiddleware())
	authed.POST(api.PathLogout, s.Logout)
	authed.GET(api.PathMe, s.Me)

	r.NoRoute(func(c *gin.Context) { fail(c, http.StatusNotFound, "not found") })
	return r
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "err", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

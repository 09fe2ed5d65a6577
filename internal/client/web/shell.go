// Package web is the workbench's localhost web shell: a handful of gin
// pages, each guarded by the route guard against the auth controller.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aiworkbench/internal/client/guard"
	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/client/notify"
	"github.com/dmitrijs2005/aiworkbench/internal/client/services"
	"github.com/dmitrijs2005/aiworkbench/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

//go:embed templates/*.html
var templatesFS embed.FS

const shutdownTimeout = 5 * time.Second

// Controller is the part of services.AuthController the shell drives.
type Controller interface {
	Snapshot() services.State
	SignIn(ctx context.Context, username, password string) (bool, error)
	SignOut(ctx context.Context)
}

// Shell serves the web pages.
type Shell struct {
	ctrl     Controller
	notices  *notify.Recorder
	guard    guard.Guard
	logger   logging.Logger
	validate *validator.Validate
	tmpl     *template.Template
}

// NewShell creates a shell. notices should be wired into the controller's
// notifier; the shell shows whatever it recorded as flash messages.
func NewShell(ctrl Controller, notices *notify.Recorder, g guard.Guard, l logging.Logger) *Shell {
	return &Shell{
		ctrl:     ctrl,
		notices:  notices,
		guard:    g,
		logger:   l.With("module", "web_shell"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tmpl:     template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

// Handler builds the gin engine.
func (s *Shell) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(s.tmpl)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, s.guard.LandingPath) })
	r.GET("/healthz", s.health)
	r.GET(s.guard.LoginPath, s.loginPage)
	r.POST(s.guard.LoginPath, s.login)
	r.POST("/logout", s.logout)

	for _, rt := range Routes {
		if rt.Requirement.Public() {
			continue
		}
		r.GET(rt.Path, s.guard.Middleware(s.ctrl, rt.Requirement), s.pageFor(rt))
	}

	r.NoRoute(func(c *gin.Context) {
		s.render(c, http.StatusNotFound, "notfound.html", &page{Title: "Not found"})
	})
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Shell) Run(ctx context.Context, addr string) error {
	listen, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Shell) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "err", err)
		}
	}()

	s.logger.Info(ctx, "Web shell listening", "address", "http://"+listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type page struct {
	Title    string
	User     *models.User
	Flashes  []notify.Notice
	Error    string
	From     string
	Username string
	Tools    []Tool
	Tool     Tool
}

// render drains pending notices into flashes. A notice repeating the
// page's own error is dropped so the message shows once.
func (s *Shell) render(c *gin.Context, status int, name string, p *page) {
	if s.notices != nil {
		for _, n := range s.notices.Drain() {
			if p.Error != "" && n.Message == p.Error {
				continue
			}
			p.Flashes = append(p.Flashes, n)
		}
	}
	c.HTML(status, name, p)
}

func (s *Shell) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "auth": s.ctrl.Snapshot().Status})
}

type loginForm struct {
	Username string `form:"username" validate:"required,max=128"`
	Password string `form:"password" validate:"required,max=1024"`
	From     string `form:"from"`
}

func (s *Shell) loginPage(c *gin.Context) {
	from := c.Query(guard.FromParam)
	if s.ctrl.Snapshot().Authenticated() {
		c.Redirect(http.StatusSeeOther, s.guard.SafeReturn(from))
		return
	}
	s.render(c, http.StatusOK, "login.html", &page{Title: "Sign in", From: from})
}

func (s *Shell) login(c *gin.Context) {
	var f loginForm
	if err := c.ShouldBind(&f); err != nil {
		s.render(c, http.StatusBadRequest, "login.html", &page{Title: "Sign in", Error: "Malformed form"})
		return
	}
	if err := s.validate.Struct(f); err != nil {
		s.render(c, http.StatusBadRequest, "login.html", &page{
			Title: "Sign in", Error: "Username and password are required", From: f.From, Username: f.Username,
		})
		return
	}

	ok, err := s.ctrl.SignIn(c.Request.Context(), f.Username, f.Password)
	if !ok {
		s.logger.Debug(c.Request.Context(), "web sign-in failed", "err", err)
		s.render(c, http.StatusUnauthorized, "login.html", &page{
			Title: "Sign in", Error: services.UserMessage(err), From: f.From, Username: f.Username,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, s.guard.SafeReturn(f.From))
}

func (s *Shell) logout(c *gin.Context) {
	s.ctrl.SignOut(c.Request.Context())
	c.Redirect(http.StatusSeeOther, s.guard.LoginPath)
}

func (s *Shell) pageFor(rt Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := guard.CurrentUser(c)
		p := &page{Title: rt.Title, User: user}

		switch rt.Path {
		case "/dashboard":
			p.Tools = VisibleTools(user.Role)
			s.render(c, http.StatusOK, "dashboard.html", p)
		case "/tools/:id":
			t, ok := FindTool(c.Param("id"))
			if !ok || (t.AdminOnly && !user.Role.Elevated()) {
				p.Title = "Not found"
				s.render(c, http.StatusNotFound, "notfound.html", p)
				return
			}
			p.Title, p.Tool = t.Name, t
			s.render(c, http.StatusOK, "tool.html", p)
		case "/admin":
			s.render(c, http.StatusOK, "admin.html", p)
		case "/ops":
			s.render(c, http.StatusOK, "ops.html", p)
		default:
			s.render(c, http.StatusNotFound, "notfound.html", p)
		}
	}
}

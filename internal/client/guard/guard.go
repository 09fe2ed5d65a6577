// Package guard decides whether a route may be shown for the current
// authentication state.
package guard

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/client/services"
)

// Kind is the outcome of a guard decision.
type Kind int

const (
	// Pending means the state is still loading; show a placeholder.
	Pending Kind = iota
	// Redirect sends the user to Decision.Location.
	Redirect
	// Denied shows an access-denied view with a single "go back" action.
	Denied
	// Allow renders the route.
	Allow
)

func (k Kind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Denied:
		return "denied"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Requirement describes what a route needs. A non-empty Role implies
// Authenticated.
type Requirement struct {
	Authenticated bool
	Role          models.Role
}

// Public reports whether the route needs nothing.
func (r Requirement) Public() bool { return !r.Authenticated && r.Role == "" }

// Decision is the guard's verdict. Location is set for Redirect only.
type Decision struct {
	Kind     Kind
	Location string
}

const (
	DefaultLoginPath   = "/login"
	DefaultLandingPath = "/dashboard"

	// FromParam carries the originally requested location to the login page.
	FromParam = "from"
)

// Guard holds the two well-known locations decisions redirect to.
type Guard struct {
	LoginPath   string
	LandingPath string
}

// Default uses /login and /dashboard.
var Default = Guard{LoginPath: DefaultLoginPath, LandingPath: DefaultLandingPath}

// New returns a Guard, filling empty paths with the defaults.
func New(loginPath, landingPath string) Guard {
	g := Default
	if loginPath != "" {
		g.LoginPath = loginPath
	}
	if landingPath != "" {
		g.LandingPath = landingPath
	}
	return g
}

// Decide applies Default.Decide.
func Decide(s services.State, req Requirement, location string) Decision {
	return Default.Decide(s, req, location)
}

// Decide returns the verdict for showing the route at location.
//
// While the state is loading no navigation decision is made. An
// unauthenticated user is sent to the login page with location preserved.
// A standard user on an admin route is sent to the landing page; any other
// role mismatch is denied.
func (g Guard) Decide(s services.State, req Requirement, location string) Decision {
	if req.Public() {
		return Decision{Kind: Allow}
	}

	switch {
	case s.Loading():
		return Decision{Kind: Pending}
	case !s.Authenticated():
		return Decision{Kind: Redirect, Location: g.LoginURL(location)}
	}

	if req.Role != "" && s.User.Role != req.Role {
		if req.Role == models.RoleAdmin && s.User.Role == models.RoleStandard {
			return Decision{Kind: Redirect, Location: g.LandingPath}
		}
		return Decision{Kind: Denied}
	}
	return Decision{Kind: Allow}
}

// LoginURL builds the login location preserving from.
func (g Guard) LoginURL(from string) string {
	if from == "" {
		return g.LoginPath
	}
	return g.LoginPath + "?" + url.Values{FromParam: {from}}.Encode()
}

// SafeReturn sanitizes a post-login return location. Only local absolute
// paths are accepted; anything else (other hosts, schemes,
// protocol-relative paths, the login page itself) yields the landing page.
func (g Guard) SafeReturn(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.ContainsAny(from, "\\\r\n") {
		return g.LandingPath
	}
	u, err := url.Parse(from)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return g.LandingPath
	}
	if u.Path == g.LoginPath {
		return g.LandingPath
	}
	return u.RequestURI()
}

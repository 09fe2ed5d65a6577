package web

import (
	"strings"

	"github.com/dmitrijs2005/aiworkbench/internal/client/guard"
	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
)

// Route is one page of the workbench shell. Path may end in a ":id"
// segment matching any single path segment.
type Route struct {
	Path        string
	Title       string
	Requirement guard.Requirement
}

var (
	authenticated = guard.Requirement{Authenticated: true}
	adminOnly     = guard.Requirement{Authenticated: true, Role: models.RoleAdmin}
	operatorOnly  = guard.Requirement{Authenticated: true, Role: models.RoleStandard}
)

// Routes is the page table shared by the web and terminal shells.
var Routes = []Route{
	{Path: "/login", Title: "Sign in"},
	{Path: "/dashboard", Title: "Dashboard", Requirement: authenticated},
	{Path: "/tools/:id", Title: "Tool", Requirement: authenticated},
	{Path: "/admin", Title: "Administration", Requirement: adminOnly},
	{Path: "/ops", Title: "Operations queue", Requirement: operatorOnly},
}

// Match finds the route for a request path (query string ignored).
func Match(path string) (Route, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, r := range Routes {
		if matchPattern(r.Path, path) {
			return r, true
		}
	}
	return Route{}, false
}

func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}

// Tool is a card on the dashboard.
type Tool struct {
	ID          string
	Name        string
	Description string
	AdminOnly   bool
}

// Tools is the static tool catalogue.
var Tools = []Tool{
	{ID: "prompt-lab", Name: "Prompt Lab", Description: "Draft and compare prompts against deployed models."},
	{ID: "eval-runner", Name: "Eval Runner", Description: "Run evaluation suites and inspect regressions."},
	{ID: "dataset-browser", Name: "Dataset Browser", Description: "Browse labelled datasets and sampling jobs."},
	{ID: "model-registry", Name: "Model Registry", Description: "Promote, pin and retire model versions.", AdminOnly: true},
}

// FindTool looks a tool up by id.
func FindTool(id string) (Tool, bool) {
	for _, t := range Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// VisibleTools returns the tools a user with role may open.
func VisibleTools(role models.Role) []Tool {
	out := make([]Tool, 0, len(Tools))
	for _, t := range Tools {
		if t.AdminOnly && !role.Elevated() {
			continue
		}
		out = append(out, t)
	}
	return out
}

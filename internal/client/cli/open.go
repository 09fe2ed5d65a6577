package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/aiworkbench/internal/client/guard"
	"github.com/dmitrijs2005/aiworkbench/internal/client/web"
)

// Open runs the route guard for location and prints the outcome, the way
// the web shell would render it.
func (a *App) Open(ctx context.Context, location string) error {
	route, ok := web.Match(location)
	if !ok {
		fmt.Fprintf(a.out, "No such page: %s\n", location)
		return nil
	}

	d := a.guard.Decide(a.ctrl.Snapshot(), route.Requirement, location)
	switch d.Kind {
	case guard.Pending:
		fmt.Fprintln(a.out, "Loading session, try again in a moment")
	case guard.Redirect:
		fmt.Fprintf(a.out, "Redirected to %s\n", d.Location)
	case guard.Denied:
		fmt.Fprintf(a.out, "Access denied to %s (go back)\n", route.Title)
	case guard.Allow:
		fmt.Fprintf(a.out, "Opened %s (%s)\n", route.Title, location)
	}
	return nil
}

// Routes prints the page table with each page's requirement.
func (a *App) Routes(ctx context.Context) error {
	for _, r := range web.Routes {
		req := "public"
		switch {
		case r.Requirement.Role != "":
			req = "role " + string(r.Requirement.Role)
		case r.Requirement.Authenticated:
			req = "signed in"
		}
		fmt.Fprintf(a.out, "%-12s %-18s %s\n", r.Path, r.Title, req)
	}
	return nil
}

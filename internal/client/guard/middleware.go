package guard

import (
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/client/services"
	"github.com/gin-gonic/gin"
)

// StateSource is anything that can report the current auth state.
// *services.AuthController implements it.
type StateSource interface {
	Snapshot() services.State
}

const userKey = "guard.user"

var (
	pendingPage = template.Must(template.New("pending").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>Loading</title></head>
<body><p>Loading your session&hellip;</p></body></html>
`))
	deniedPage = template.Must(template.New("denied").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Access denied</title></head>
<body><h1>Access denied</h1><p>You do not have permission to view this page.</p>
<p><a href="{{.Back}}">Go back</a></p></body></html>
`))
)

// Middleware applies g's decision for req to every request.
//
//	Pending  -> 503 placeholder, Retry-After: 1
//	Redirect -> 303 to the decided location
//	Denied   -> 403 page with a "Go back" link to the landing page
//	Allow    -> next handler; the user is available via CurrentUser
func (g Guard) Middleware(src StateSource, req Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := src.Snapshot()
		d := g.Decide(st, req, c.Request.URL.RequestURI())

		switch d.Kind {
		case Pending:
			c.Header("Retry-After", "1")
			render(c, http.StatusServiceUnavailable, pendingPage, nil)
			c.Abort()
		case Redirect:
			c.Redirect(http.StatusSeeOther, d.Location)
			c.Abort()
		case Denied:
			render(c, http.StatusForbidden, deniedPage, struct{ Back string }{g.LandingPath})
			c.Abort()
		default:
			if st.User != nil {
				c.Set(userKey, st.User)
			}
			c.Next()
		}
	}
}

// CurrentUser returns the user the guard admitted, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

func render(c *gin.Context, status int, t *template.Template, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	_ = t.Execute(c.Writer, data)
}

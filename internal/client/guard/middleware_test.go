package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/aiworkbench/internal/client/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticState services.State

func (s staticState) Snapshot() services.State { return services.State(s) }

func newEngine(src StateSource, req Requirement) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/*path", Default.Middleware(src, req), func(c *gin.Context) {
		name := "anonymous"
		if u, ok := CurrentUser(c); ok {
			name = u.ID
		}
		c.String(http.StatusOK, "hello "+name)
	})
	return r
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		state      services.State
		req        Requirement
		path       string
		wantStatus int
		wantLoc    string
		wantBody   string
	}{
		{"pending", loading, authOnly, "/dashboard", http.StatusServiceUnavailable, "", "Loading"},
		{"redirect to login", anon, authOnly, "/tools/7", http.StatusSeeOther, "/login?from=%2Ftools%2F7", ""},
		{"redirect to landing", std, adminOnly, "/admin", http.StatusSeeOther, "/dashboard", ""},
		{"denied", admin, stdOnly, "/ops", http.StatusForbidden, "", "Go back"},
		{"allowed", admin, adminOnly, "/admin", http.StatusOK, "", "hello 1"},
		{"public", anon, Requirement{}, "/about", http.StatusOK, "", "hello anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(staticState(tt.state), tt.req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			if tt.wantStatus == http.StatusServiceUnavailable {
				assert.Equal(t, "1", w.Header().Get("Retry-After"))
			}
		})
	}
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/aiworkbench/internal/api"
	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, success bool, data any, msg string) {
	t.Helper()
	env := api.Envelope{Success: success, Message: msg}
	if data != nil {
		b, err := json.Marshal(data)
		require.NoError(t, err)
		env.Data = b
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(env))
}

var alice = models.User{ID: "u-1", Username: "alice", Email: "alice@example.com", Role: models.RoleAdmin}

func TestHTTPClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, api.PathLogin, r.URL.Path)
		_, err := uuid.Parse(r.Header.Get(common.RequestIDHeader))
		assert.NoError(t, err, "request id must be a uuid")
		assert.Empty(t, r.Header.Get(common.AuthorizationHeader))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "s3cret", req.Password)

		writeEnvelope(t, w, http.StatusOK, true, api.LoginData{User: alice, Token: "tok-1"}, "")
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL + "/")
	s, err := c.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, alice, s.User)
}

func TestHTTPClient_Login_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"401 envelope", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusUnauthorized, false, nil, "invalid credentials")
		}},
		{"200 with success false", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusOK, false, nil, "nope")
		}},
		{"403 without body", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL).Login(context.Background(), "alice", "bad")
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.NotErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestHTTPClient_Login_MalformedSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, true, api.LoginData{User: alice}, "")
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).Login(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewHTTPClient(srv.URL).Login(context.Background(), "a", "b")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewHTTPClient(url).CurrentUser(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		err := NewHTTPClient(srv.URL, WithTimeout(20*time.Millisecond)).Ping(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestHTTPClient_CurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathMe, r.URL.Path)
		if r.Header.Get(common.AuthorizationHeader) != common.BearerPrefix+"good" {
			writeEnvelope(t, w, http.StatusUnauthorized, false, nil, "token revoked")
			return
		}
		writeEnvelope(t, w, http.StatusOK, true, alice, "")
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)

	u, err := c.CurrentUser(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, alice, *u)

	_, err = c.CurrentUser(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrSessionInvalid)
	assert.Contains(t, err.Error(), "token revoked")
}

func TestHTTPClient_Logout(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathLogout, r.URL.Path)
		gotAuth = r.Header.Get(common.AuthorizationHeader)
		writeEnvelope(t, w, http.StatusOK, true, nil, "")
	}))
	defer srv.Close()

	require.NoError(t, NewHTTPClient(srv.URL).Logout(context.Background(), "tok-9"))
	assert.Equal(t, "Bearer tok-9", gotAuth)
}

func TestHTTPClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, api.PathHealth, r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, true, nil, "")
	}))
	defer srv.Close()

	assert.NoError(t, NewHTTPClient(srv.URL).Ping(context.Background()))
}

func TestNewHTTPClient_Options(t *testing.T) {
	hc := &http.Client{}
	c := NewHTTPClient("http://x", WithHTTPClient(hc), WithTimeout(0))
	assert.Same(t, hc, c.httpClient)
	assert.Equal(t, defaultTimeout, c.timeout)

	c = NewHTTPClient("http://x", WithTimeout(time.Second))
	assert.Equal(t, time.Second, c.timeout)
}

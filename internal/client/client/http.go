package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/aiworkbench/internal/api"
	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/common"
	"github.com/dmitrijs2005/aiworkbench/internal/logging"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// errRejected marks a well-formed refusal (401/403 or success=false); each
// call maps it to its own sentinel.
var errRejected = errors.New("rejected")

// HTTPClient implements Client over the provider's JSON API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     logging.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout bounds every request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient creates a client for the provider at baseURL
// (e.g. "http://127.0.0.1:7071").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		logger:     logging.Nop{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	var data api.LoginData
	err := c.do(ctx, http.MethodPost, api.PathLogin, "", api.LoginRequest{Username: username, Password: password}, &data)
	if err != nil {
		return nil, mapRejection(err, ErrUnauthorized)
	}
	if data.Token == "" {
		return nil, errors.New("login response carries no token")
	}
	if err := data.User.Validate(); err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}
	return &models.Session{User: data.User, Token: data.Token}, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return mapRejection(c.do(ctx, http.MethodPost, api.PathLogout, token, nil, nil), ErrSessionInvalid)
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, api.PathMe, token, nil, &u); err != nil {
		return nil, mapRejection(err, ErrSessionInvalid)
	}
	return &u, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, api.PathHealth, "", nil, nil)
	if errors.Is(err, errRejected) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func mapRejection(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errRejected) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return err
}

// do performs one request and decodes the envelope's data into out (when
// out is non-nil). Transport failures, timeouts and 5xx responses come back
// as ErrUnavailable; refusals as errRejected.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "provider request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "provider request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}

	var env api.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %s", errRejected, resp.Status)
		}
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("%w: %s", errRejected, msg)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/mpetrovs/prodhub/internal/common"
)

// SessionCookieName carries the identity provider's session token on
// every request. The server resolves it to a user; unauthenticated
// calls fail with 401.
const SessionCookieName = "session"

// pingPath is the lightweight endpoint probed for reachability.
const pingPath = "/api/auth/session-check"

// HTTPClient talks JSON over HTTP to the ProdHub server.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the given base URL, e.g.
// "http://127.0.0.1:8080". No default timeout is set on the underlying
// http.Client: push and delete requests are unbounded, the pull path
// bounds its requests with per-call contexts.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// SetToken installs the session token sent with subsequent requests.
// An empty token clears the session.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) sessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.sessionToken(); token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", common.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return data, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s %s", common.ErrUnauthorized, method, path)
	default:
		return nil, fmt.Errorf("%w: %s %s: status %d", common.ErrServerRejected, method, path, resp.StatusCode)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pingPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	// Reachability only: the status code does not matter.
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) List(ctx context.Context, collection string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/"+collection, nil)
}

func (c *HTTPClient) Create(ctx context.Context, collection string, record any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/"+collection, record)
}

func (c *HTTPClient) Update(ctx context.Context, collection, id string, record any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, "/api/"+collection+"/"+id, record)
}

func (c *HTTPClient) Delete(ctx context.Context, collection, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/"+collection+"/"+id, nil)
	return err
}

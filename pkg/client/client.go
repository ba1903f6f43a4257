// Package client is a small REST client for the clinic API. Reads go through
// an in-memory TTL cache with explicit invalidation; writes invalidate the
// affected prefix. The client holds no global state, so tests can construct
// one per case with their own cache TTL.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Config holds client settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	CacheTTL   time.Duration
}

// Client talks to the clinic REST API.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *gocache.Cache
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// New creates a client. A zero CacheTTL disables read caching.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	var c *gocache.Cache
	if cfg.CacheTTL > 0 {
		c = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		cache:   c,
	}
}

// Get fetches path and decodes the JSON body into out. Responses are cached
// by path until the TTL expires or the path prefix is invalidated.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	if c.cache != nil {
		if cached, ok := c.cache.Get(path); ok {
			return json.Unmarshal(cached.([]byte), out)
		}
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	if c.cache != nil {
		c.cache.SetDefault(path, body)
	}
	return json.Unmarshal(body, out)
}

// Post sends a JSON body and decodes the response into out when non-nil.
func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	return c.write(ctx, http.MethodPost, path, in, out)
}

// Put sends a JSON body and decodes the response into out when non-nil.
func (c *Client) Put(ctx context.Context, path string, in, out interface{}) error {
	return c.write(ctx, http.MethodPut, path, in, out)
}

// Delete removes a resource.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.write(ctx, http.MethodDelete, path, nil, nil)
}

// Invalidate drops cached GET responses whose path starts with prefix. An
// empty prefix flushes the whole cache.
func (c *Client) Invalidate(prefix string) {
	if c.cache == nil {
		return
	}
	if prefix == "" {
		c.cache.Flush()
		return
	}
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

func (c *Client) write(ctx context.Context, method, path string, in, out interface{}) error {
	var payload io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}

	// Writes change server state, so cached reads under the same prefix
	// are stale.
	c.Invalidate(resourcePrefix(path))

	if out != nil && len(body) > 0 {
		return json.Unmarshal(body, out)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// resourcePrefix reduces "/api/v1/appointments/42/cancel" to
// "/api/v1/appointments" so a write to any appointment invalidates all
// cached appointment reads without flushing unrelated resources. The
// mount segments ("api", a version like "v1") are not resources
// themselves and are skipped when picking the resource segment.
func resourcePrefix(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	end := 0
	for i, seg := range segments {
		if isMountSegment(seg) {
			continue
		}
		end = i + 1
		break
	}
	if end == 0 {
		return path
	}
	return "/" + strings.Join(segments[:end], "/")
}

func isMountSegment(seg string) bool {
	if seg == "api" {
		return true
	}
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

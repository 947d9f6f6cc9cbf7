// Package client provides a typed HTTP client for the rentdesk REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// Client is an HTTP client for the rentdesk API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. baseURL includes the API prefix,
// e.g. http://localhost:8080/api.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(e.Body), &errResp) == nil && errResp.Error != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, errResp.Error)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Body)
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an
// APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// List returns the records of a resource matching q.
func List[T any](ctx context.Context, c *Client, h resource.Handle[T], q resource.Query) ([]T, error) {
	path := "/" + string(h.Name())
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var items []T
	if err := c.send(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, fmt.Errorf("listing %s: %w", h.Name(), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get returns one record by id.
func Get[T any](ctx context.Context, c *Client, h resource.Handle[T], id int64) (T, error) {
	var item T
	if err := c.send(ctx, http.MethodGet, itemPath(h.Name(), id), nil, &item); err != nil {
		return item, fmt.Errorf("getting %s/%d: %w", h.Name(), id, err)
	}
	return item, nil
}

// Create stores a new record and returns it with its server-assigned id.
func Create[T any](ctx context.Context, c *Client, h resource.Handle[T], body T) (T, error) {
	var item T
	if err := c.send(ctx, http.MethodPost, "/"+string(h.Name()), body, &item); err != nil {
		return item, fmt.Errorf("creating %s: %w", h.Name(), err)
	}
	return item, nil
}

// Update applies a partial update and returns the merged record.
func Update[T any](ctx context.Context, c *Client, h resource.Handle[T], id int64, patch any) (T, error) {
	var item T
	if err := c.send(ctx, http.MethodPatch, itemPath(h.Name(), id), patch, &item); err != nil {
		return item, fmt.Errorf("updating %s/%d: %w", h.Name(), id, err)
	}
	return item, nil
}

// Remove deletes one record.
func (c *Client) Remove(ctx context.Context, name resource.Name, id int64) error {
	if err := c.send(ctx, http.MethodDelete, itemPath(name, id), nil, nil); err != nil {
		return fmt.Errorf("deleting %s/%d: %w", name, id, err)
	}
	return nil
}

// Batch applies ops in a single server-side transaction.
func (c *Client) Batch(ctx context.Context, ops []resource.Op) error {
	body := struct {
		Ops []resource.Op `json:"ops"`
	}{Ops: ops}
	if err := c.send(ctx, http.MethodPost, "/_batch", body, nil); err != nil {
		return fmt.Errorf("applying batch: %w", err)
	}
	return nil
}

// GetSingleton reads a singleton resource. It asks for record 1 first and
// falls back to the bare collection path for backends that expose the
// singleton as a plain object.
func GetSingleton[T any](ctx context.Context, c *Client, h resource.Handle[T]) (T, error) {
	item, err := Get(ctx, c, h, 1)
	if err == nil {
		return item, nil
	}
	if StatusOf(err) == 0 {
		return item, err
	}

	var fallback T
	if err := c.send(ctx, http.MethodGet, "/"+string(h.Name()), nil, &fallback); err != nil {
		return fallback, fmt.Errorf("getting %s: %w", h.Name(), err)
	}
	return fallback, nil
}

// UpdateSingleton patches a singleton resource with the same fallback as
// GetSingleton.
func UpdateSingleton[T any](ctx context.Context, c *Client, h resource.Handle[T], patch any) (T, error) {
	item, err := Update(ctx, c, h, 1, patch)
	if err == nil {
		return item, nil
	}
	if StatusOf(err) == 0 {
		return item, err
	}

	var fallback T
	if err := c.send(ctx, http.MethodPatch, "/"+string(h.Name()), patch, &fallback); err != nil {
		return fallback, fmt.Errorf("updating %s: %w", h.Name(), err)
	}
	return fallback, nil
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	root := strings.TrimSuffix(c.baseURL, "/api")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

func itemPath(name resource.Name, id int64) string {
	return fmt.Sprintf("/%s/%d", name, id)
}

// send builds a request with an optional JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(respBody))
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Body: text}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// Package remote talks to a salesboard API server. Client implements the
// kanban coordinator's Remote so the board can run against a shared backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/models"
)

const defaultTimeout = 10 * time.Second

// ErrNoBaseURL is returned by New when no server address is configured
var ErrNoBaseURL = errors.New("remote base url is not configured")

// Error is a non-2xx answer from the server
type Error struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server returned %d %s", e.StatusCode, e.Title)
}

// Is lets callers match a 404 against the store's not-found error
func (e *Error) Is(target error) bool {
	return e.StatusCode == http.StatusNotFound && target == models.ErrRequestNotFound
}

// Client calls the HTTP API with a bearer token
type Client struct {
	baseURL *url.URL
	token   string
	timeout time.Duration
	http    *http.Client
}

var _ kanban.Remote = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds every call except Watch
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New returns a client for the server at baseURL
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		token:   token,
		timeout: defaultTimeout,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends one bounded call and decodes a JSON answer into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(body, &problem); err == nil {
		if problem.Title != "" {
			apiErr.Title = problem.Title
		}
		apiErr.Detail = problem.Detail
	} else if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Detail = text
	}
	return apiErr
}

// ListRequests returns every request the token's user may see
func (c *Client) ListRequests(ctx context.Context) ([]models.Request, error) {
	return c.SearchRequests(ctx, nil)
}

// SearchRequests lists with the server-side filter parameters in query
func (c *Client) SearchRequests(ctx context.Context, query url.Values) ([]models.Request, error) {
	var body struct {
		Requests []models.Request `json:"requests"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/requests", query, nil, &body); err != nil {
		return nil, err
	}
	for i := range body.Requests {
		body.Requests[i].Status = models.NormalizeStatus(string(body.Requests[i].Status))
	}
	return body.Requests, nil
}

// GetRequest returns one request
func (c *Client) GetRequest(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	if err := c.do(ctx, http.MethodGet, "/api/requests/"+url.PathEscape(id), nil, nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestStatus writes status through the board path. The call is
// made once; failures are reported, never retried.
func (c *Client) UpdateRequestStatus(ctx context.Context, id string, status models.Status) error {
	body := map[string]models.Status{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/api/requests/"+url.PathEscape(id), nil, body, nil); err != nil {
		slog.Debug("remote status update failed", "request_id", id, "status", status, "error", err)
		return err
	}
	return nil
}

// ChangeStatus uses the workflow-enforcing edit path
func (c *Client) ChangeStatus(ctx context.Context, id string, status models.Status) (*models.Request, error) {
	var req models.Request
	body := map[string]models.Status{"status": status}
	if err := c.do(ctx, http.MethodPost, "/api/requests/"+url.PathEscape(id)+"/status", nil, body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Report returns the server's markdown report
func (c *Client) Report(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/api/reports", nil, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch report: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read report: %w", err)
	}
	return string(data), nil
}

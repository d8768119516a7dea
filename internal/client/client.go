// Package client talks to the employee service over HTTP.
//
// A Client is both the roster.DataSource and the roster.Mutator used by the
// engine. Credentials are passed to New; the client never reads them from
// the environment or any other ambient store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rshade/roster/internal/roster"
	"github.com/rshade/roster/pkg/version"
)

const (
	employeesPath = "/employees"

	// HeaderRequestID carries a fresh UUID on every request.
	HeaderRequestID = "X-Request-ID"
	// HeaderAPIVersion is the service version advertised on responses.
	HeaderAPIVersion = "X-API-Version"

	// maxErrorBody bounds how much of an error response ends up in messages.
	maxErrorBody = 512
)

// Client is an HTTP implementation of roster.Backend.
type Client struct {
	baseURL          *url.URL
	token            string
	httpClient       *http.Client
	userAgent        string
	logger           zerolog.Logger
	skipVersionCheck bool
	versionChecked   sync.Once
}

var _ roster.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. The timeout passed to
// New is not applied to a client supplied this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request and version-check events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSkipVersionCheck disables the X-API-Version compatibility warning.
func WithSkipVersionCheck(skip bool) Option {
	return func(c *Client) {
		c.skipVersionCheck = skip
	}
}

// New returns a client for the service at baseURL. A zero timeout means the
// client waits for as long as the request context allows.
func New(baseURL, token string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", roster.ErrInvalidInput, baseURL)
	}

	c := &Client{
		baseURL:    u,
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  version.UserAgent(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchAll returns every employee record.
func (c *Client) FetchAll(ctx context.Context) ([]roster.Record, error) {
	var records []roster.Record
	if _, err := c.doJSON(ctx, http.MethodGet, employeesPath, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []roster.Record{}
	}
	return records, nil
}

// Create adds record. The ID is assigned by the service.
func (c *Client) Create(ctx context.Context, record roster.Record) (bool, error) {
	record.ID = 0
	return c.mutate(ctx, http.MethodPost, employeesPath, record)
}

// Update replaces the record with record.ID.
func (c *Client) Update(ctx context.Context, record roster.Record) (bool, error) {
	return c.mutate(ctx, http.MethodPut, recordPath(record.ID), record)
}

// Delete removes the record with id.
func (c *Client) Delete(ctx context.Context, id int) (bool, error) {
	return c.mutate(ctx, http.MethodDelete, recordPath(id), nil)
}

func recordPath(id int) string {
	return employeesPath + "/" + strconv.Itoa(id)
}

// mutate interprets the service's answer: a JSON boolean body is the verdict,
// any other 2xx body counts as accepted.
func (c *Client) mutate(ctx context.Context, method, path string, body any) (bool, error) {
	respBody, err := c.doJSON(ctx, method, path, body, nil)
	if err != nil {
		return false, err
	}

	var accepted bool
	if jsonErr := json.Unmarshal(bytes.TrimSpace(respBody), &accepted); jsonErr == nil {
		return accepted, nil
	}
	return true, nil
}

// doJSON performs one request. When out is non-nil the 2xx body is decoded
// into it; the raw body is returned either way.
func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, out any) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding request: %w", roster.ErrInvalidInput, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", roster.ErrTransientFetch, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := c.logger.With().
		Str("component", "client").
		Str("method", method).
		Str("path", u.Path).
		Str("request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", roster.ErrTransientFetch, method, u.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration_ms", time.Since(start)).
		Msg("request completed")

	c.checkAPIVersion(ctx, resp.Header.Get(HeaderAPIVersion))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", roster.ErrTransientFetch, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s %s returned %d", roster.ErrNotAuthorized, method, u.Path, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method: method,
			Path:   u.Path,
			Code:   resp.StatusCode,
			Body:   truncate(strings.TrimSpace(string(respBody)), maxErrorBody),
		}
	}

	if out != nil {
		if err = json.Unmarshal(respBody, out); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %w", roster.ErrTransientFetch, err)
		}
	}
	return respBody, nil
}

// StatusError is a non-2xx response other than 401 and 403.
// It matches roster.ErrTransientFetch under errors.Is.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Is reports ErrTransientFetch so callers need not know about StatusError.
func (e *StatusError) Is(target error) bool {
	return target == roster.ErrTransientFetch
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == code
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

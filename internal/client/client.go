// Package client is the REST client for the catalog backend. It owns the
// base URL, the HTTP client, and the request decoration (bearer token,
// request id), and it maps the backend's error shapes to the notice
// taxonomy every caller relies on: 401 access denied, 403 blocking alert,
// and the transaction-commit 500 reinterpreted as a referential conflict.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"catalogctl/internal/metrics"
	"catalogctl/internal/notify"
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token for outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the catalog backend.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	notifier notify.Notifier
	logger   *slog.Logger
}

// New creates a client for the backend at baseURL. A zero timeout falls
// back to the default.
func New(baseURL string, timeout time.Duration, tokens TokenSource, notifier notify.Notifier, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
	}
}

// do performs one round trip: marshal body, decorate, call, surface error
// notices, decode the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := readAPIError(resp)
		c.notice(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// notice maps an API error to its user-facing notice. The mapping lives
// here, on the response path, so every caller sees the same behavior.
func (c *Client) notice(err *APIError) {
	switch {
	case err.IsConflict():
		metrics.Inc(metrics.ConflictResponses)
		c.notifier.Error("this record is linked to other records; check the relationship graph before retrying")
	case err.IsAccessDenied():
		c.notifier.Warn("you do not have access to this resource")
	case err.IsForbidden():
		c.notifier.Alert(err.Message)
	}
	c.logger.Debug("backend error", "status", err.Status, "message", err.Message)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

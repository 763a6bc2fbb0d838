// Package api is the REST gateway to the FundPal backend. It attaches the
// current identity to every scoped request and exposes one call per backend
// resource. No retries, caching, or de-duplication.
package api

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

	"github.com/fundpal/clientcore/internal/config"
)

// IdentityProvider returns the current user id, or "" when unauthenticated.
type IdentityProvider func() string

// IdentityStrategy controls how a user id rides along on a scoped request.
// The web client historically used a header, the mobile client a query
// parameter; a deployment picks one convention and sticks to it.
type IdentityStrategy interface {
	Attach(req *http.Request, userID string)
}

// HeaderStrategy sends the id as a user-id header.
type HeaderStrategy struct{}

func (HeaderStrategy) Attach(req *http.Request, userID string) {
	req.Header.Set("user-id", userID)
}

// QueryStrategy appends the id as a user_id query parameter.
type QueryStrategy struct{}

func (QueryStrategy) Attach(req *http.Request, userID string) {
	q := req.URL.Query()
	q.Set("user_id", userID)
	req.URL.RawQuery = q.Encode()
}

// StrategyFor resolves the configured identity mode to a strategy.
func StrategyFor(mode string) (IdentityStrategy, error) {
	switch mode {
	case config.IdentityModeHeader:
		return HeaderStrategy{}, nil
	case config.IdentityModeQuery:
		return QueryStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", mode)
	}
}

// Client is the thin HTTP wrapper over the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	strategy   IdentityStrategy
	identity   IdentityProvider
	logger     *slog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	IdentityMode string
	Identity     IdentityProvider
	Logger       *slog.Logger
	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client
}

// New constructs a Client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	strategy, err := StrategyFor(opts.IdentityMode)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	identity := opts.Identity
	if identity == nil {
		identity = func() string { return "" }
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		strategy:   strategy,
		identity:   identity,
		logger:     logger,
	}, nil
}

// do issues one request. A non-empty userID is attached per the configured
// strategy; target, when non-nil, receives the decoded JSON response body.
func (c *Client) do(ctx context.Context, method, path, userID string, query url.Values, body, target any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		c.strategy.Attach(req, userID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	c.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return decodeResponse(resp, target)
}

func (c *Client) get(ctx context.Context, path, userID string, query url.Values, target any) error {
	return c.do(ctx, http.MethodGet, path, userID, query, nil, target)
}

func (c *Client) post(ctx context.Context, path, userID string, query url.Values, body, target any) error {
	return c.do(ctx, http.MethodPost, path, userID, query, body, target)
}

// scoped returns the id to attach: the explicit override when given, else the
// provider's current value.
func (c *Client) scoped(override string) string {
	if override != "" {
		return override
	}
	return c.identity()
}

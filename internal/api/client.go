// Package api is the HTTP gateway to the NL2SQL backend. It owns request
// construction, error mapping, and the normalization of non-standard
// numeric tokens (NaN, Infinity) the backend's serializer can emit.
package api

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
)

var (
	// ErrEmptyQuery is returned before any network call when the natural
	// language input is blank.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrEmptySQL is returned before any network call when the SQL input
	// is blank.
	ErrEmptySQL = errors.New("SQL cannot be empty")
)

// Client talks to a single backend instance. Calls are synchronous; no
// timeout is applied beyond what the passed context carries.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the backend at baseURL. A nil logger
// discards log output.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		logger:  logger,
	}
}

// Query submits a natural language question for translation and execution.
func (c *Client) Query(ctx context.Context, query string) (*QueryResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	var resp QueryResponse
	if err := c.post(ctx, "/api/query", map[string]string{"query": query}, &resp); err != nil {
		return nil, err
	}
	if err := resp.buildRows(); err != nil {
		return nil, err
	}
	c.logger.Debug("query completed",
		"rows", resp.Rows.Len(),
		"elapsed", time.Since(start))
	return &resp, nil
}

// ExecuteSQL runs user-edited SQL directly.
func (c *Client) ExecuteSQL(ctx context.Context, sql string) (*QueryResponse, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return nil, ErrEmptySQL
	}

	var resp QueryResponse
	if err := c.post(ctx, "/api/execute-sql", map[string]string{"sql": sql}, &resp); err != nil {
		return nil, err
	}
	if err := resp.buildRows(); err != nil {
		return nil, err
	}
	if resp.SQL == "" {
		resp.SQL = sql
	}
	return &resp, nil
}

// Health checks backend availability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/api/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// The backend serializer can emit bare NaN/Infinity tokens, which
	// encoding/json rejects. Localize them to null before decoding.
	body = sanitizeNonFinite(body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("malformed response from %s: %w", req.URL.Path, err)
	}
	return nil
}

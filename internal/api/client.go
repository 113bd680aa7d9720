package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Bekezhan200207/Ai-recruiting-frontend/internal/logbook"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4096
)

// Client is the typed wrapper over the recruiting API. It performs the
// remote call, maps transport and HTTP failures onto the error taxonomy and
// normalizes every response body; it carries no business logic.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logbook.Logbook
}

// Option customizes Client construction for tests and alternate runtimes.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogbook attaches a logbook for request-level diagnostics.
func WithLogbook(log *logbook.Logbook) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// doJSON issues one JSON request and returns the raw response body after
// HTTP-level failures have been mapped onto *Error.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode request: %v", err), err: err}
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.execute(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("build request: %v", err), err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) execute(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return nil, networkError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := statusError(resp.StatusCode, extractErrorMessage(body))
		c.log.Warn("request rejected",
			"method", req.Method, "path", req.URL.Path,
			"status", resp.StatusCode, "kind", string(apiErr.Kind))
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	return body, nil
}

// extractErrorMessage pulls the caller-facing message out of a 4xx/5xx body.
func extractErrorMessage(body []byte) string {
	p, err := decodePayload(body)
	if err != nil {
		return strings.TrimSpace(string(body))
	}
	return p.str("error", "message", "detail")
}

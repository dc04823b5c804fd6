package httputil

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mwaltz/sitesnap/pkg/observability"
)

const (
	// DefaultTimeout bounds a single request, including retries' individual attempts.
	DefaultTimeout = 10 * time.Second

	// DefaultAttempts is the fixed transport-level retry budget.
	DefaultAttempts = 5

	// DefaultRetryDelay is the initial backoff delay, doubling per attempt.
	DefaultRetryDelay = time.Second
)

var (
	// ErrNotFound is returned when the upstream resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Client provides shared HTTP functionality for all snapshot sources.
// It carries default headers, a per-request timeout, and a fixed retry
// budget. A Client is safe for concurrent use by multiple source jobs;
// no response state is shared between calls.
type Client struct {
	http     *http.Client
	headers  map[string]string
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHeaders sets default headers applied to every request.
// Request-specific headers override defaults for the same key.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) { c.headers = h }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetry overrides the retry budget and initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithInsecureTLS disables certificate verification. Only intended for the
// one upstream whose self-hosted deployments ship broken certificate chains.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// NewClient creates a Client with the default timeout and retry budget.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		attempts: DefaultAttempts,
		delay:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers and handles retries automatically.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// GetRaw performs an HTTP GET and returns the response body verbatim as a
// raw JSON value. Useful for sources whose responses are persisted as-is.
func (c *Client) GetRaw(ctx context.Context, url string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// GetBytes performs an HTTP GET and returns the raw response body.
// Useful for binary assets like images.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil, nil)
}

// Post performs an HTTP POST with a JSON-encoded body and decodes the
// JSON response into v.
func (c *Client) Post(ctx context.Context, url string, payload, v any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := c.do(ctx, http.MethodPost, url, map[string]string{"Content-Type": "application/json"}, data)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, reqBody []byte) ([]byte, error) {
	var out []byte
	err := Retry(ctx, c.attempts, c.delay, func() error {
		body, err := c.doOnce(ctx, method, url, headers, reqBody)
		if err != nil {
			return err
		}
		out = body
		return nil
	})
	return out, err
}

func (c *Client) doOnce(ctx context.Context, method, url string, headers map[string]string, reqBody []byte) ([]byte, error) {
	var rd io.Reader
	if reqBody != nil {
		rd = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, method, host, path, err)
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

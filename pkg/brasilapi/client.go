// Package brasilapi provides a client for the BrasilAPI CNPJ registry lookup.
package brasilapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultBaseURL is the public CNPJ lookup endpoint.
const DefaultBaseURL = "https://brasilapi.com.br/api/cnpj/v1"

// Client defines the registry lookup operations.
type Client interface {
	// Lookup fetches the registry record for a normalized 14-digit CNPJ.
	// It performs exactly one request.
	Lookup(ctx context.Context, cnpj string) (*Company, error)
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.StatusCode == http.StatusNotFound {
		return "brasilapi: cnpj not found (status 404)"
	}
	return fmt.Sprintf("brasilapi: unexpected status %d: %s", e.StatusCode, e.Body)
}

// NotFound reports whether the registry has no record for the identifier.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// DecodeError is returned when a 200 response does not carry a JSON object.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "brasilapi: decode response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Option configures the BrasilAPI client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a new BrasilAPI client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   DefaultBaseURL,
		userAgent: "cnpj-cli/1.0",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Lookup(ctx context.Context, cnpj string) (*Company, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, cnpj)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "brasilapi: create request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "brasilapi: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "brasilapi: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	company, err := ParseCompany(body)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// ParseCompany decodes a registry payload. The payload must be a JSON object.
func ParseCompany(body []byte) (*Company, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if fields == nil {
		return nil, &DecodeError{Err: eris.New("payload is not a JSON object")}
	}
	return &Company{Raw: json.RawMessage(body), Fields: fields}, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}

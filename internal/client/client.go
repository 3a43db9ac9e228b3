package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iammorganparry/logoflow/internal/models"
)

// APIError is a failure the backend reported in a JSON error body.
// Any other error returned by Client means no usable response arrived.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the Logoflow backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 180 * time.Second, // image generation is slow
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateNames requests brand name candidates.
func (c *Client) GenerateNames(ctx context.Context, req models.GenerateNamesRequest) (*models.GenerateNamesResponse, error) {
	var resp models.GenerateNamesResponse
	if err := c.post(ctx, "/api/generate-names", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateLogo requests a logo image for a chosen name.
func (c *Client) GenerateLogo(ctx context.Context, req models.GenerateLogoRequest) (*models.GenerateLogoResponse, error) {
	var resp models.GenerateLogoResponse
	if err := c.post(ctx, "/api/generate-logo", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health fetches the backend health report. A degraded backend answers 503
// with a full report, which is returned alongside a nil error.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("backend health check: %w", err)
	}
	defer resp.Body.Close()

	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &health, nil
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq, result)
}

// History lists recent generations, optionally filtered by kind. A zero
// limit takes the server default.
func (c *Client) History(ctx context.Context, kind models.GenerationKind, limit int) (*models.HistoryResponse, error) {
	q := url.Values{}
	if kind != "" {
		q.Set("kind", string(kind))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u := c.baseURL + "/api/history"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var result models.HistoryResponse
	if err := c.do(httpReq, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do sends httpReq and decodes a 2xx body into result. A non-2xx response
// with a JSON error body becomes *APIError.
func (c *Client) do(httpReq *http.Request, result any) error {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil {
			return fmt.Errorf("HTTP %d: undecodable body: %w", resp.StatusCode, err)
		}
		if errResp.Error == "" {
			return fmt.Errorf("HTTP %d: %s: body has no error message", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

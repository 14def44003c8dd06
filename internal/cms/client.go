package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ============================================
// RESOURCE CLIENT
// ============================================
// Typed HTTP client over the CMS REST conventions. Responsibilities:
// - build {base}/api{path}?{query} URLs
// - attach bearer auth and JSON content type
// - normalize failures into RemoteError / NetworkError
// It never swallows errors and never retries; retry policy lives in
// the cached query layer above.

const defaultTimeout = 12 * time.Second

// Config holds the client configuration.
type Config struct {
	BaseURL  string        // e.g. http://localhost:1337
	APIToken string        // optional bearer token
	Timeout  time.Duration // per-request timeout, default 12s
	Debug    bool          // verbose request/response logging
}

// Client issues requests against the CMS.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new CMS client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get fetches a resource. path is the resource path ("/news-articles");
// q may be nil.
func (c *Client) Get(ctx context.Context, path string, q *Query) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, q, nil)
}

// Post sends a JSON body to a resource (e.g. contact submissions).
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, q *Query, body any) (*Envelope, error) {
	requestURL := c.buildURL(path, q)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	if c.cfg.Debug {
		log.Debug().Str("method", method).Str("url", requestURL).Msg("CMS request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if c.cfg.Debug {
		log.Debug().Str("url", requestURL).Int("status", resp.StatusCode).
			Int("bytes", len(bodyBytes)).Msg("CMS response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    extractErrorMessage(bodyBytes),
		}
	}

	var envelope Envelope
	if len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return &envelope, nil
}

func (c *Client) buildURL(path string, q *Query) string {
	base := strings.TrimSuffix(c.cfg.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	requestURL := base + "/api" + path
	if encoded := q.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}
	return requestURL
}

// extractErrorMessage pulls a human message out of an error body.
// Tolerates non-JSON bodies; falls back to "" (rendered as
// "Unknown error" by RemoteError).
func extractErrorMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return parsed.Message
}

package backend

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

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driven"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Ensure Client implements the interface.
var _ driven.ProjectBackend = (*Client)(nil)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:5000".
	BaseURL string

	// Timeout bounds each attempt. Zero means 10 seconds.
	Timeout time.Duration

	// RatePerSecond throttles requests. Zero disables throttling.
	RatePerSecond float64

	// RetryMax is the number of retries after the first attempt.
	RetryMax int
}

// Client calls the remote project API.
type Client struct {
	baseURL *url.URL
	http    *retryablehttp.Client
	limiter *RateLimiter
}

// NewClient creates a client for the API at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = timeout
	rc.Logger = leveledLogger{}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL: base,
		http:    rc,
		limiter: NewRateLimiter(cfg.RatePerSecond),
	}, nil
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type searchRequest struct {
	Query string `json:"query"`
}

// SearchProjects posts the query and returns the matching summaries in
// response order.
func (c *Client) SearchProjects(ctx context.Context, query string) ([]domain.ProjectSummary, error) {
	body, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	var results []domain.ProjectSummary
	if err := c.do(ctx, http.MethodPost, "/api/projects", body, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.ProjectSummary{}
	}
	return results, nil
}

// FetchProjectDetails returns the details of a project. A 404 maps to
// domain.ErrNotFound.
func (c *Client) FetchProjectDetails(ctx context.Context, id int64) (*domain.ProjectDetails, error) {
	var details domain.ProjectDetails
	path := "/api/project/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL.JoinPath(path)

	var reqBody any
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("backend: %s %s [%s]", method, u.Path, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	data, err := readAllLimit(resp.Body, maxBodyBytes)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		c.limiter.Backoff(retryAfter(resp.Header.Get("Retry-After")))
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, errorMessage(data))
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, errorMessage(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", u.Path, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a body, or returns it raw.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}

func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(b)) > limit {
		return nil, ErrPayloadTooLarge
	}
	return b, nil
}

// leveledLogger routes retryablehttp's logging to the verbose logger.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...any) { logger.Warn("backend: %s %v", msg, kv) }
func (leveledLogger) Warn(msg string, kv ...any)  { logger.Warn("backend: %s %v", msg, kv) }
func (leveledLogger) Info(msg string, kv ...any)  { logger.Debug("backend: %s %v", msg, kv) }
func (leveledLogger) Debug(msg string, kv ...any) { logger.Debug("backend: %s %v", msg, kv) }

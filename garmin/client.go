package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/spetersoncode/garmin-mcp/retry"
)

// DefaultBaseURL is the token-authenticated Garmin Connect API gateway.
const DefaultBaseURL = "https://connectapi.garmin.com"

const userAgent = "garmin-mcp/1.0"

// Client calls the Garmin Connect API on behalf of one authenticated user.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      Token
	limiter    *rate.Limiter
	retryCfg   retry.Config
	log        *logrus.Entry

	mu          sync.Mutex
	displayName string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRateLimit sets the request rate limit in requests per minute.
// A non-positive value disables rate limiting.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 5)
	}
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) {
		c.retryCfg = cfg
	}
}

// WithLogger sets the logger. Defaults to the standard logrus logger.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a Client using the given OAuth token.
// Defaults: 60 requests/minute, 3 retry attempts, 30 second HTTP timeout.
func NewClient(token Token, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		token:      token,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5),
		retryCfg:   retry.DefaultConfig(),
		log:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues an authenticated GET and decodes the JSON response into out.
// A 204 or empty body leaves out untouched.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

// post issues an authenticated POST with a JSON body.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("garmin: rate limiter: %w", err)
		}
	}

	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("garmin: encoding request body: %w", err)
		}
	}

	requestID := uuid.NewString()
	start := time.Now()

	data, err := retry.Do(ctx, c.retryCfg, func() ([]byte, error) {
		return c.roundTrip(ctx, method, requestURL, payload, requestID)
	})

	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
		"duration":   time.Since(start).Round(time.Millisecond).String(),
	})
	if err != nil {
		log.WithError(err).Warn("garmin request failed")
		return err
	}
	log.Debug("garmin request ok")

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("garmin: decoding %s response: %w", path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, requestURL string, payload []byte, requestID string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("garmin: creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("garmin: reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Status: resp.StatusCode,
			Path:   req.URL.Path,
			Body:   truncate(string(data), 256),
		}
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// profileDisplayName returns the user's display name, fetching and caching
// it on first use. Several wellness endpoints key on it instead of a user ID.
func (c *Client) profileDisplayName(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.displayName
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	profile, err := c.UserProfile(ctx)
	if err != nil {
		return "", fmt.Errorf("garmin: fetching profile for display name: %w", err)
	}
	name, _ := profile["displayName"].(string)
	if name == "" {
		return "", fmt.Errorf("garmin: profile has no displayName")
	}

	c.mu.Lock()
	c.displayName = name
	c.mu.Unlock()
	return name, nil
}

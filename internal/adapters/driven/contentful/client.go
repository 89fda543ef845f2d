// Package contentful implements the destination adapter: a Contentful
// management API client covering the operations the pipeline consumes
// (space/environment resolution, content types, asset lifecycle, entry
// lifecycle), with token-bucket rate limiting on every call.
package contentful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Destination = (*Client)(nil)

const (
	// DefaultBaseURL is the Contentful management API endpoint.
	DefaultBaseURL = "https://api.contentful.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// HeaderVersion carries the optimistic-locking version on writes.
	HeaderVersion = "X-Contentful-Version"

	// HeaderContentType names the content type on entry creation.
	HeaderContentType = "X-Contentful-Content-Type"

	// HeaderRateLimitReset carries the 429 backoff in seconds.
	HeaderRateLimitReset = "X-Contentful-RateLimit-Reset"
)

// Config configures a management API client.
type Config struct {
	SpaceID       string
	EnvironmentID string
	Token         string

	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string

	// RateLimit overrides DefaultRateLimit.
	RateLimit RateLimitConfig
}

// Client is an environment-scoped Contentful management API client.
type Client struct {
	baseURL    string
	spaceID    string
	envID      string
	httpClient *http.Client
	limiter    *RateLimiter

	localeOnce sync.Once
	localeErr  error
	locales    []string
}

// NewClient creates a client authenticated with a bearer management
// token.
func NewClient(ctx context.Context, cfg Config) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		spaceID:    cfg.SpaceID,
		envID:      cfg.EnvironmentID,
		httpClient: tc,
		limiter:    NewRateLimiter(cfg.RateLimit),
	}
}

// envPath returns the environment-scoped path prefix.
func (c *Client) envPath() string {
	return fmt.Sprintf("/spaces/%s/environments/%s", c.spaceID, c.envID)
}

// Validate resolves the configured space and environment, surfacing
// auth failures and typos before any migration work starts.
func (c *Client) Validate(ctx context.Context) error {
	if err := c.getJSON(ctx, "/spaces/"+c.spaceID, nil); err != nil {
		if IsUnauthorized(err) {
			return fmt.Errorf("%w: management token rejected for space %s", domain.ErrAuthInvalid, c.spaceID)
		}
		if IsNotFound(err) {
			return fmt.Errorf("%w: space %s", domain.ErrNotFound, c.spaceID)
		}
		return fmt.Errorf("resolve space: %w", err)
	}

	if err := c.getJSON(ctx, c.envPath(), nil); err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%w: environment %s in space %s", domain.ErrNotFound, c.envID, c.spaceID)
		}
		return fmt.Errorf("resolve environment: %w", err)
	}
	return nil
}

// HasContentType reports whether the environment defines the given
// content type.
func (c *Client) HasContentType(ctx context.Context, contentTypeID string) (bool, error) {
	var collection contentTypeCollection
	if err := c.getJSON(ctx, c.envPath()+"/content_types", &collection); err != nil {
		return false, fmt.Errorf("list content types: %w", err)
	}
	for _, ct := range collection.Items {
		if ct.Sys.ID == contentTypeID {
			return true, nil
		}
	}
	return false, nil
}

// Locales returns the environment's locale codes, fetched once and
// cached for the lifetime of the client.
func (c *Client) Locales(ctx context.Context) ([]string, error) {
	c.localeOnce.Do(func() {
		var collection localeCollection
		if err := c.getJSON(ctx, c.envPath()+"/locales", &collection); err != nil {
			c.localeErr = fmt.Errorf("list locales: %w", err)
			return
		}
		for _, loc := range collection.Items {
			if loc.Default {
				// Default locale first; asset fields are created under it.
				c.locales = append([]string{loc.Code}, c.locales...)
				continue
			}
			c.locales = append(c.locales, loc.Code)
		}
	})
	return c.locales, c.localeErr
}

// do performs one rate-limited request and decodes the response into
// dest when it is non-nil. A 429 records backoff on the limiter and
// returns a RateLimitError.
func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, payload, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/vnd.contentful.management.v1+json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		seconds := 0
		if header := resp.Header.Get(HeaderRateLimitReset); header != "" {
			seconds, _ = strconv.Atoi(header)
		}
		c.limiter.RecordRateLimitError(seconds)
		return &RateLimitError{RetryAfter: time.Duration(seconds) * time.Second}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody apiErrorBody
		_ = json.Unmarshal(body, &errBody)
		message := errBody.Message
		if message == "" {
			message = errBody.Sys.ID
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message, URL: u}
	}

	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, dest)
}

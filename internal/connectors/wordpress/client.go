// Package wordpress implements the source connector: a thin client for
// the WordPress REST API with bounded, partial-failure-tolerant
// pagination over its collection endpoints.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driven"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SourceClient = (*Client)(nil)

const (
	// PageCap is the maximum per_page value WordPress accepts.
	PageCap = 100

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// HeaderTotal carries the collection's total item count.
	HeaderTotal = "X-WP-Total"
)

// Collection endpoint paths under /wp-json/wp/v2.
const (
	pathPosts      = "/wp-json/wp/v2/posts"
	pathTags       = "/wp-json/wp/v2/tags"
	pathCategories = "/wp-json/wp/v2/categories"
	pathMedia      = "/wp-json/wp/v2/media"
)

// Client is a WordPress REST API client scoped to one site.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given site base URL
// (e.g. https://blog.example.com, no trailing slash required).
func NewClient(baseURL string) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Ping checks that the site's REST API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{"per_page": {"1"}}
	if _, _, err := c.getPage(ctx, pathPosts, params); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return nil
}

// Posts fetches up to maxItems posts.
func (c *Client) Posts(ctx context.Context, maxItems int) ([]domain.RawPost, error) {
	return fetchUpTo[domain.RawPost](ctx, c, pathPosts, maxItems)
}

// Tags fetches up to maxItems tags.
func (c *Client) Tags(ctx context.Context, maxItems int) ([]domain.RawTag, error) {
	return fetchUpTo[domain.RawTag](ctx, c, pathTags, maxItems)
}

// Categories fetches up to maxItems categories.
func (c *Client) Categories(ctx context.Context, maxItems int) ([]domain.RawCategory, error) {
	return fetchUpTo[domain.RawCategory](ctx, c, pathCategories, maxItems)
}

// Media fetches up to maxItems media records.
func (c *Client) Media(ctx context.Context, maxItems int) ([]domain.RawMedia, error) {
	return fetchUpTo[domain.RawMedia](ctx, c, pathMedia, maxItems)
}

// fetchUpTo paginates a collection endpoint until maxItems is reached,
// a page comes back empty, or the total the source reports has been
// consumed. The final page requests only the remainder, never a full
// page cap. A page failure mid-way stops pagination but keeps what
// accumulated so far; only a fetch that yields nothing returns an error.
func fetchUpTo[T any](ctx context.Context, c *Client, path string, maxItems int) ([]T, error) {
	if maxItems <= 0 {
		return nil, nil
	}

	var items []T
	total := -1 // unknown until the first response

	for page := 1; len(items) < maxItems; page++ {
		remaining := maxItems - len(items)
		perPage := remaining
		if perPage > PageCap {
			perPage = PageCap
		}

		params := url.Values{
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}
		pageItems, reportedTotal, err := getPageAs[T](ctx, c, path, params)
		if err != nil {
			if len(items) > 0 {
				logger.Warn("page %d of %s failed, keeping %d fetched items: %v", page, path, len(items), err)
				return items, nil
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrEmptyCollection, path, err)
		}
		if len(pageItems) == 0 {
			break
		}

		items = append(items, pageItems...)
		if reportedTotal >= 0 {
			total = reportedTotal
		}
		if total >= 0 && len(items) >= total {
			break
		}
	}

	logger.Debug("fetched %d items from %s", len(items), path)
	return items, nil
}

// getPageAs requests one page and decodes it into a typed slice.
func getPageAs[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, int, error) {
	body, total, err := c.getPage(ctx, path, params)
	if err != nil {
		return nil, total, err
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, total, fmt.Errorf("decoding %s: %w", path, err)
	}
	return items, total, nil
}

// getPage performs one GET against a collection endpoint and returns
// the raw body plus the total count from the X-WP-Total header
// (-1 when the header is absent or unparseable).
func (c *Client) getPage(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, -1, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, -1, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, -1, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, -1, &APIError{
			StatusCode: resp.StatusCode,
			URL:        u,
			Body:       truncate(string(body), 200),
		}
	}

	total := -1
	if header := resp.Header.Get(HeaderTotal); header != "" {
		if val, err := strconv.Atoi(header); err == nil {
			total = val
		}
	}
	return body, total, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

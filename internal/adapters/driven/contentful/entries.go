package contentful

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// CreateEntry creates a draft entry of the named content type. Fields
// must already be locale-wrapped.
func (c *Client) CreateEntry(ctx context.Context, contentTypeID string, fields map[string]any) (string, error) {
	headers := map[string]string{HeaderContentType: contentTypeID}
	payload := map[string]any{"fields": fields}

	var created entryResource
	if err := c.do(ctx, http.MethodPost, c.envPath()+"/entries", headers, payload, &created); err != nil {
		return "", fmt.Errorf("create entry: %w", err)
	}
	return created.Sys.ID, nil
}

// PublishEntry publishes a previously created entry. The entry is
// re-fetched first because publishing requires its current version.
func (c *Client) PublishEntry(ctx context.Context, entryID string) error {
	path := fmt.Sprintf("%s/entries/%s", c.envPath(), entryID)

	var entry entryResource
	if err := c.getJSON(ctx, path, &entry); err != nil {
		return fmt.Errorf("get entry %s: %w", entryID, err)
	}

	headers := map[string]string{HeaderVersion: strconv.Itoa(entry.Sys.Version)}
	if err := c.do(ctx, http.MethodPut, path+"/published", headers, nil, nil); err != nil {
		return fmt.Errorf("publish entry %s: %w", entryID, err)
	}
	return nil
}

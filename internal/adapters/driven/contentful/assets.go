package contentful

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/logger"
)

const (
	// processPollInterval is the delay between asset processing checks.
	processPollInterval = time.Second

	// processPollAttempts bounds how long one asset may take to process.
	processPollAttempts = 30

	// publishedAssetsPageSize is the page size for the published-asset
	// listing.
	publishedAssetsPageSize = 1000
)

// UploadAsset runs the full asset lifecycle: create the asset from its
// source URL, trigger processing for every locale, wait for the file
// to be processed, then publish. The destination downloads the binary
// itself; nothing is pre-fetched here.
func (c *Client) UploadAsset(ctx context.Context, req domain.AssetRequest) (string, error) {
	locales, err := c.Locales(ctx)
	if err != nil {
		return "", err
	}
	if len(locales) == 0 {
		return "", fmt.Errorf("environment %s has no locales", c.envID)
	}
	defaultLocale := locales[0]

	created, err := c.createAsset(ctx, req, defaultLocale)
	if err != nil {
		return "", fmt.Errorf("create asset %s: %w", req.FileName, err)
	}

	// Each process call bumps the asset's version server-side, so the
	// version must be refreshed before processing the next locale.
	version := created.Sys.Version
	for i, locale := range locales {
		if err := c.processAsset(ctx, created.Sys.ID, version, locale); err != nil {
			return "", fmt.Errorf("process asset %s for %s: %w", req.FileName, locale, err)
		}
		if i < len(locales)-1 {
			refreshed, err := c.getAsset(ctx, created.Sys.ID)
			if err != nil {
				return "", fmt.Errorf("refresh asset %s: %w", req.FileName, err)
			}
			version = refreshed.Sys.Version
		}
	}

	processed, err := c.waitProcessed(ctx, created.Sys.ID, defaultLocale)
	if err != nil {
		return "", fmt.Errorf("asset %s: %w", req.FileName, err)
	}

	if err := c.publishAsset(ctx, processed.Sys.ID, processed.Sys.Version); err != nil {
		return "", fmt.Errorf("publish asset %s: %w", req.FileName, err)
	}

	return created.Sys.ID, nil
}

// PublishedAssets lists every published asset in the environment and
// keys it by file name. When two published assets share a file name,
// the first in listing order wins.
func (c *Client) PublishedAssets(ctx context.Context) (domain.AssetMap, error) {
	assets := domain.AssetMap{}

	for skip := 0; ; skip += publishedAssetsPageSize {
		path := fmt.Sprintf("%s/public/assets?limit=%d&skip=%d", c.envPath(), publishedAssetsPageSize, skip)
		var page assetCollection
		if err := c.getJSON(ctx, path, &page); err != nil {
			return nil, fmt.Errorf("list published assets: %w", err)
		}

		for _, asset := range page.Items {
			for _, file := range asset.Fields.File {
				if file.FileName == "" {
					continue
				}
				if _, exists := assets[file.FileName]; exists {
					continue
				}
				assets[file.FileName] = domain.AssetTarget{
					ID:  asset.Sys.ID,
					URL: file.URL,
				}
				break
			}
		}

		if skip+publishedAssetsPageSize >= page.Total || len(page.Items) == 0 {
			break
		}
	}

	logger.Debug("destination reports %d published assets", len(assets))
	return assets, nil
}

// createAsset creates a draft asset whose binary is uploaded by
// reference from the original source URL.
func (c *Client) createAsset(ctx context.Context, req domain.AssetRequest, locale string) (*assetResource, error) {
	payload := map[string]any{
		"fields": assetFields{
			Title:       map[string]string{locale: req.Title},
			Description: map[string]string{locale: req.Description},
			File: map[string]assetFile{
				locale: {
					FileName:    req.FileName,
					ContentType: imageContentType(req.FileName),
					Upload:      req.SourceURL,
				},
			},
		},
	}

	var created assetResource
	if err := c.do(ctx, http.MethodPost, c.envPath()+"/assets", nil, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// processAsset triggers server-side processing of the uploaded file
// for one locale.
func (c *Client) processAsset(ctx context.Context, assetID string, version int, locale string) error {
	path := fmt.Sprintf("%s/assets/%s/files/%s/process", c.envPath(), assetID, locale)
	headers := map[string]string{HeaderVersion: strconv.Itoa(version)}
	return c.do(ctx, http.MethodPut, path, headers, nil, nil)
}

// getAsset fetches the current state of one asset.
func (c *Client) getAsset(ctx context.Context, assetID string) (*assetResource, error) {
	var asset assetResource
	if err := c.getJSON(ctx, fmt.Sprintf("%s/assets/%s", c.envPath(), assetID), &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// waitProcessed polls the asset until its file carries a processed URL,
// returning the refreshed resource (whose version publish requires).
func (c *Client) waitProcessed(ctx context.Context, assetID, locale string) (*assetResource, error) {
	for attempt := 0; attempt < processPollAttempts; attempt++ {
		asset, err := c.getAsset(ctx, assetID)
		if err != nil {
			return nil, err
		}
		if file, ok := asset.Fields.File[locale]; ok && file.URL != "" {
			return asset, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(processPollInterval):
		}
	}
	return nil, fmt.Errorf("processing did not complete after %d attempts", processPollAttempts)
}

// publishAsset publishes a processed asset.
func (c *Client) publishAsset(ctx context.Context, assetID string, version int) error {
	path := fmt.Sprintf("%s/assets/%s/published", c.envPath(), assetID)
	headers := map[string]string{HeaderVersion: strconv.Itoa(version)}
	return c.do(ctx, http.MethodPut, path, headers, nil, nil)
}

// imageContentType guesses a MIME type from the file extension.
func imageContentType(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return "application/octet-stream"
	}
	switch strings.ToLower(fileName[idx+1:]) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

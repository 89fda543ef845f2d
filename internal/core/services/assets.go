package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/ports/driven"
	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/logger"
)

// DefaultWorkers bounds how many publish operations run concurrently
// within a stage.
const DefaultWorkers = 4

// AssetPublisher derives one asset-creation request per distinct image
// across all posts and uploads them to the destination through a
// bounded worker pool. Failures are isolated per item: a failed upload
// is logged and recorded, sibling uploads proceed, and the stage always
// runs to completion.
type AssetPublisher struct {
	dest    driven.Destination
	workers int
}

// NewAssetPublisher creates an asset publisher. workers <= 0 falls
// back to DefaultWorkers.
func NewAssetPublisher(dest driven.Destination, workers int) *AssetPublisher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &AssetPublisher{dest: dest, workers: workers}
}

// Publish uploads every distinct image referenced by the posts and
// returns per-item results plus the authoritative file-name to asset
// mapping, rebuilt from the destination's published-asset listing
// after all uploads settle.
func (p *AssetPublisher) Publish(ctx context.Context, posts []domain.NormalizedPost) ([]domain.ItemResult, domain.AssetMap) {
	requests := CollectAssetRequests(posts)
	if len(requests) == 0 {
		logger.Info("no images referenced by any post, skipping asset stage")
		return nil, domain.AssetMap{}
	}

	logger.Section("Publishing assets")
	logger.Info("uploading %d assets with %d workers", len(requests), p.workers)

	results := make([]domain.ItemResult, len(requests))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, req := range requests {
		wg.Add(1)
		go func(i int, req domain.AssetRequest) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = p.uploadOne(ctx, req)
		}(i, req)
	}
	wg.Wait()

	// Upload order and destination listing order are not guaranteed
	// identical, so the destination is re-queried for the full
	// published-asset list rather than trusting upload responses.
	assetMap, err := p.dest.PublishedAssets(ctx)
	if err != nil {
		logger.Warn("listing published assets failed, entries will carry no asset links: %v", err)
		assetMap = domain.AssetMap{}
	}

	return results, assetMap
}

// uploadOne runs the full lifecycle for a single asset and converts
// any failure into a failed ItemResult instead of an error.
func (p *AssetPublisher) uploadOne(ctx context.Context, req domain.AssetRequest) domain.ItemResult {
	result := domain.ItemResult{
		Kind:      domain.ItemAsset,
		SourceKey: req.FileName,
	}

	id, err := p.dest.UploadAsset(ctx, req)
	if err != nil {
		logger.Warn("asset %s: upload failed: %v", req.FileName, err)
		result.Status = domain.StatusFailed
		result.Error = err.Error()
		return result
	}

	logger.Debug("asset %s published as %s", req.FileName, id)
	result.Status = domain.StatusPublished
	result.DestinationID = id
	return result
}

// CollectAssetRequests builds the upload list in post order then image
// order, deduplicated by file name: the first reference wins and
// supplies the asset's title and description. Images without a
// derivable file name are skipped.
func CollectAssetRequests(posts []domain.NormalizedPost) []domain.AssetRequest {
	seen := make(map[string]bool)
	var requests []domain.AssetRequest

	for _, post := range posts {
		for _, img := range post.Images {
			name := img.FileName()
			if name == "" {
				logger.Warn("post %d: image %q has no file name, skipping", post.SourceID, img.SourceURL)
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true

			title := img.Title
			if title == "" {
				title = fmt.Sprintf("Image %s", name)
			}
			description := img.AltText
			if description == "" {
				description = title
			}
			requests = append(requests, domain.AssetRequest{
				FileName:    name,
				SourceURL:   img.SourceURL,
				Title:       title,
				Description: description,
			})
		}
	}
	return requests
}

// Package adapters bridges the API client to the interfaces the UI services
// consume.
package adapters

import (
	"context"

	"photogrip/internal/api"
	"photogrip/internal/ui/services/actions"
)

// BlobSource downloads photo content
type BlobSource interface {
	FetchBlob(ctx context.Context, url string) (api.Blob, error)
}

// BlobFetcher adapts an API client to actions.BlobFetcher
type BlobFetcher struct {
	src BlobSource
}

// NewBlobFetcher creates a new adapter
func NewBlobFetcher(src BlobSource) *BlobFetcher {
	return &BlobFetcher{src: src}
}

// FetchBlob downloads url and converts the result
func (f *BlobFetcher) FetchBlob(ctx context.Context, url string) (actions.Blob, error) {
	b, err := f.src.FetchBlob(ctx, url)
	if err != nil {
		return actions.Blob{}, err
	}
	return actions.Blob{Data: b.Data, ContentType: b.ContentType}, nil
}

var _ actions.BlobFetcher = (*BlobFetcher)(nil)

package actions

import (
	"context"

	"photogrip/internal/domain"
)

// PhotoListSource refetches the photo lists that a delete invalidates
type PhotoListSource interface {
	RefreshAll(ctx context.Context) error
	RefreshMine(ctx context.Context) error
}

// Deleter removes a single photo on the server
type Deleter interface {
	DeletePhoto(ctx context.Context, id string) error
}

// Blob is downloaded photo content
type Blob struct {
	Data        []byte
	ContentType string
}

// BlobFetcher downloads photo content for sharing
type BlobFetcher interface {
	FetchBlob(ctx context.Context, url string) (Blob, error)
}

// File is a named photo ready to be shared
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Sharer is a platform share target able to take several files at once
type Sharer interface {
	CanShare(files []File) bool
	Share(ctx context.Context, files []File, title, text string) error
}

// Clipboard receives the link list when no Sharer can take the files
type Clipboard interface {
	WriteText(text string) error
}

// Item is a picked photo resolved against the current sequence
type Item struct {
	Index int
	Photo domain.Photo
}

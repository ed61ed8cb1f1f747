// Package media wraps the external image-hosting collaborator. Only
// the store-and-return-URL contract matters to the rest of the app.
package media

import (
	"context"
	"errors"
	"io"
)

// Upload is what the host hands back: a durable URL for display and an
// opaque id for later management.
type Upload struct {
	URL      string
	PublicID string
}

type Uploader interface {
	Upload(ctx context.Context, r io.Reader) (Upload, error)
}

// Disabled stands in when no media host is configured; every upload
// fails and nothing is persisted downstream.
type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader) (Upload, error) {
	return Upload{}, errors.New("media host not configured")
}

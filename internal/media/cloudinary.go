package media

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	uploadFolder = "book-marketplace"
	// Fit within 800x1000 and compress adaptively, server-side.
	uploadTransformation = "c_limit,w_800,h_1000/q_auto:good"
)

// Cloudinary uploads listing images to a fixed folder with a
// server-side resize/compress transform applied on ingest.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(url string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader) (Upload, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         uploadFolder,
		Transformation: uploadTransformation,
	})
	if err != nil {
		return Upload{}, err
	}
	// The SDK reports API-side rejections in the body, not as an error.
	if res.Error.Message != "" {
		return Upload{}, errors.New(res.Error.Message)
	}
	return Upload{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

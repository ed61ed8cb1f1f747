package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"bookmarket/internal/domain"
	"bookmarket/internal/media"
	"bookmarket/internal/repos"
	"bookmarket/internal/validate"
)

// MaxImageBytes caps the image payload; larger uploads are rejected
// before any bytes go to the media host.
const MaxImageBytes = 10 << 20

var (
	ErrMissingImage     = errors.New("book image is required")
	ErrInvalidImageType = errors.New("only image files are allowed")
	ErrImageTooLarge    = errors.New("file too large, maximum size is 10MB")
)

// MissingFieldsError enumerates the required fields absent or blank in
// a submission.
type MissingFieldsError struct{ Fields []string }

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ValidationError carries field-level constraint failures (bad price,
// unknown condition).
type ValidationError struct{ Details []string }

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// UploadError wraps a media-host failure. Nothing was persisted.
type UploadError struct{ Err error }

func (e *UploadError) Error() string { return fmt.Sprintf("image upload failed: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// StoreError wraps a persistence failure after a successful upload.
type StoreError struct{ Err error }

func (e *StoreError) Error() string { return fmt.Sprintf("could not save listing: %v", e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// ListingInput is the raw text of a submission, untrimmed.
type ListingInput struct {
	Title       string
	Author      string
	Department  string
	Year        string
	Subject     string
	Price       string
	Condition   string
	Description string
	SellerName  string
	SellerEmail string
	SellerPhone string
	Location    string
}

// ImageInput is the single image part of a submission.
type ImageInput struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

type IngestService struct {
	Listings *repos.ListingRepo
	Media    media.Uploader
}

func NewIngestService(listings *repos.ListingRepo, uploader media.Uploader) *IngestService {
	return &IngestService{Listings: listings, Media: uploader}
}

// requiredFields pairs the wire name of each mandatory field with its
// accessor, so the boundary check stays declarative.
var requiredFields = []struct {
	name string
	get  func(ListingInput) string
}{
	{"title", func(in ListingInput) string { return in.Title }},
	{"author", func(in ListingInput) string { return in.Author }},
	{"department", func(in ListingInput) string { return in.Department }},
	{"year", func(in ListingInput) string { return in.Year }},
	{"subject", func(in ListingInput) string { return in.Subject }},
	{"price", func(in ListingInput) string { return in.Price }},
	{"condition", func(in ListingInput) string { return in.Condition }},
	{"sellerName", func(in ListingInput) string { return in.SellerName }},
	{"sellerEmail", func(in ListingInput) string { return in.SellerEmail }},
	{"sellerPhone", func(in ListingInput) string { return in.SellerPhone }},
	{"location", func(in ListingInput) string { return in.Location }},
}

// Create validates a submission, transfers the image to the media host
// and persists the listing. Any failure aborts the whole operation with
// nothing written; the record is only constructed after the transfer
// succeeds, so there is no orphaned state to clean up.
func (s *IngestService) Create(ctx context.Context, in ListingInput, img *ImageInput) (domain.Listing, error) {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.get(in)) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.Listing{}, &MissingFieldsError{Fields: missing}
	}

	if img == nil || img.Reader == nil {
		return domain.Listing{}, ErrMissingImage
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return domain.Listing{}, ErrInvalidImageType
	}
	if img.Size > MaxImageBytes {
		return domain.Listing{}, ErrImageTooLarge
	}

	var details []string
	price, ok := validate.Price(in.Price)
	if !ok {
		details = append(details, "price must be a non-negative number")
	}
	condition, ok := validate.Condition(in.Condition)
	if !ok {
		details = append(details, "condition must be one of: "+strings.Join(domain.Conditions, ", "))
	}
	if len(details) > 0 {
		return domain.Listing{}, &ValidationError{Details: details}
	}

	up, err := s.Media.Upload(ctx, img.Reader)
	if err != nil {
		return domain.Listing{}, &UploadError{Err: err}
	}

	l := domain.Listing{
		Title:         strings.TrimSpace(in.Title),
		Author:        strings.TrimSpace(in.Author),
		Department:    strings.TrimSpace(in.Department),
		Year:          strings.TrimSpace(in.Year),
		Subject:       strings.TrimSpace(in.Subject),
		Price:         price,
		Condition:     condition,
		Description:   strings.TrimSpace(in.Description),
		ImageURL:      up.URL,
		ImagePublicID: up.PublicID,
		SellerName:    strings.TrimSpace(in.SellerName),
		SellerEmail:   strings.ToLower(strings.TrimSpace(in.SellerEmail)),
		SellerPhone:   strings.TrimSpace(in.SellerPhone),
		Location:      strings.TrimSpace(in.Location),
		Status:        domain.StatusAvailable,
	}
	if err := s.Listings.Create(&l); err != nil {
		return domain.Listing{}, &StoreError{Err: err}
	}
	return l, nil
}

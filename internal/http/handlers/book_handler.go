package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookmarket/internal/domain"
	applog "bookmarket/internal/log"
	"bookmarket/internal/services"
)

type BookHandler struct {
	Catalog *services.CatalogService
	Ingest  *services.IngestService
}

// List handles GET /api/books: optional independent filters plus a
// sort selector, all available listings by default.
func (h *BookHandler) List(c *fiber.Ctx) error {
	f := domain.ListingFilter{
		Search:     c.Query("search"),
		Department: strings.TrimSpace(c.Query("department")),
		Year:       strings.TrimSpace(c.Query("year")),
		Subject:    strings.TrimSpace(c.Query("subject")),
		Condition:  strings.TrimSpace(c.Query("condition")),
		SortBy:     c.Query("sortBy"),
	}
	for _, b := range []struct {
		name string
		dst  **float64
	}{
		{"minPrice", &f.MinPrice},
		{"maxPrice", &f.MaxPrice},
	} {
		raw := strings.TrimSpace(c.Query(b.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			applog.Security(c, "validation.fail", map[string]any{"field": b.name, "value": raw})
			return fail(c, fiber.StatusBadRequest, b.name+" must be a number", nil)
		}
		*b.dst = &v
	}

	books, err := h.Catalog.Search(f)
	if err != nil {
		applog.Error(c, "books.search.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch books", nil)
	}
	return c.JSON(fiber.Map{"success": true, "books": books, "count": len(books)})
}

func (h *BookHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Catalog.Stats()
	if err != nil {
		applog.Error(c, "books.stats.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch statistics", nil)
	}
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

func (h *BookHandler) Get(c *fiber.Ctx) error {
	book, err := h.Catalog.Get(c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "Book not found", nil)
	}
	if err != nil {
		applog.Error(c, "books.get.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch book details", nil)
	}
	return c.JSON(fiber.Map{"success": true, "book": book})
}

// Create handles POST /api/books: multipart text fields plus exactly
// one image part. The whole operation fails with nothing written on
// any violation.
func (h *BookHandler) Create(c *fiber.Ctx) error {
	in := services.ListingInput{
		Title:       c.FormValue("title"),
		Author:      c.FormValue("author"),
		Department:  c.FormValue("department"),
		Year:        c.FormValue("year"),
		Subject:     c.FormValue("subject"),
		Price:       c.FormValue("price"),
		Condition:   c.FormValue("condition"),
		Description: c.FormValue("description"),
		SellerName:  c.FormValue("sellerName"),
		SellerEmail: c.FormValue("sellerEmail"),
		SellerPhone: c.FormValue("sellerPhone"),
		Location:    c.FormValue("location"),
	}

	var img *services.ImageInput
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			applog.Error(c, "books.create.image_open", err, nil)
			return fail(c, fiber.StatusInternalServerError, "Failed to read uploaded image", nil)
		}
		defer f.Close()
		img = &services.ImageInput{
			Reader:      f,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}

	book, err := h.Ingest.Create(c.Context(), in, img)
	if err != nil {
		return h.createError(c, err)
	}

	applog.Audit(c, "books.create.success", map[string]any{"id": book.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Book listed successfully",
		"book":    book.Summary(),
	})
}

// createError maps the ingestion failure taxonomy onto responses.
// Client faults get field-level detail; collaborator faults get an
// opaque detail string. Nothing is retried.
func (h *BookHandler) createError(c *fiber.Ctx, err error) error {
	var missing *services.MissingFieldsError
	var invalid *services.ValidationError
	var upload *services.UploadError
	var store *services.StoreError

	switch {
	case errors.As(err, &missing):
		applog.Security(c, "books.create.missing_fields", map[string]any{"fields": missing.Fields})
		return fail(c, fiber.StatusBadRequest, "Missing required fields",
			fiber.Map{"missingFields": missing.Fields})
	case errors.Is(err, services.ErrMissingImage):
		return fail(c, fiber.StatusBadRequest, "Book image is required", nil)
	case errors.Is(err, services.ErrInvalidImageType):
		return fail(c, fiber.StatusBadRequest, "Only image files are allowed", nil)
	case errors.Is(err, services.ErrImageTooLarge):
		return fail(c, fiber.StatusBadRequest, "File too large. Maximum size is 10MB.", nil)
	case errors.As(err, &invalid):
		return fail(c, fiber.StatusBadRequest, "Validation Error",
			fiber.Map{"details": invalid.Details})
	case errors.As(err, &upload):
		applog.Error(c, "books.create.upload_failed", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to create book listing",
			fiber.Map{"details": upload.Err.Error()})
	case errors.As(err, &store):
		applog.Error(c, "books.create.store_failed", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to create book listing",
			fiber.Map{"details": store.Err.Error()})
	default:
		applog.Error(c, "books.create.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to create book listing", nil)
	}
}

// UpdateStatus handles PUT /api/books/:id/status, the sole mutation a
// listing sees after creation.
func (h *BookHandler) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	book, err := h.Catalog.UpdateStatus(c.Params("id"), body.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		applog.Security(c, "books.status.invalid", map[string]any{"status": body.Status})
		return fail(c, fiber.StatusBadRequest, "Invalid status. Must be available, sold, or reserved", nil)
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Book not found", nil)
	case err != nil:
		applog.Error(c, "books.status.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to update book status", nil)
	}

	applog.Audit(c, "books.status.updated", map[string]any{"id": book.ID, "status": book.Status})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Book status updated to " + book.Status,
		"book":    book,
	})
}

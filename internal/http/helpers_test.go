package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"bookmarket/internal/http/handlers"
	"bookmarket/internal/media"
	"bookmarket/internal/repos"
	"bookmarket/internal/services"
)

type fakeUploader struct {
	calls int
	fail  bool
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader) (media.Upload, error) {
	f.calls++
	if f.fail {
		return media.Upload{}, errors.New("simulated host outage")
	}
	_, _ = io.Copy(io.Discard, r)
	return media.Upload{
		URL:      "https://cdn.example/book-marketplace/test.jpg",
		PublicID: "book-marketplace/test",
	}, nil
}

// newTestApp wires the real handler stack over a throwaway database,
// with the media host faked out.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *fakeUploader) {
	t.Helper()
	db, err := repos.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	up := &fakeUploader{}
	deps := handlers.NewDeps(db, up, "test-secret")

	app := fiber.New()
	app.Server().MaxRequestBodySize = services.MaxImageBytes + (1 << 20)
	app.Use(requestid.New())

	api := app.Group("/api")
	auth := api.Group("/auth")
	auth.Post("/signup", deps.AuthHandler.Signup)
	auth.Post("/login", deps.AuthHandler.Login)
	auth.Get("/me", handlers.RequireAuth(deps.Auth), deps.AuthHandler.Me)

	books := api.Group("/books")
	books.Get("/", deps.BookHandler.List)
	books.Get("/stats", deps.BookHandler.Stats)
	books.Get("/:id", deps.BookHandler.Get)
	books.Post("/", deps.BookHandler.Create)
	books.Put("/:id/status", deps.BookHandler.UpdateStatus)

	return app, db, up
}

func bookForm() map[string]string {
	return map[string]string{
		"title":       "Introduction to Algorithms",
		"author":      "Cormen",
		"department":  "CS",
		"year":        "SE",
		"subject":     "Algorithms",
		"price":       "350",
		"condition":   "Good",
		"description": "lightly annotated",
		"sellerName":  "Jane Doe",
		"sellerEmail": "Jane@Example.EDU",
		"sellerPhone": "555-0100",
		"location":    "North Campus",
	}
}

// multipartBody builds a listing submission. The image part needs an
// explicit Content-Type header; CreateFormFile would stamp it
// application/octet-stream.
func multipartBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if withImage {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="cover.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

// multipartPDF is multipartBody with a non-image file part.
func multipartPDF(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="notes.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

// multipartHugeImage builds a submission whose image part is one byte
// over the upload cap. The fields keep the total request under the
// server body limit so the per-file check is what rejects it.
func multipartHugeImage(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="huge.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(make([]byte, services.MaxImageBytes+1)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return m
}

func listingCount(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM listings`); err != nil {
		t.Fatal(err)
	}
	return n
}

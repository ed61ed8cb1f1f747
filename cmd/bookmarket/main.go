package main

import (
	"errors"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"bookmarket/internal/config"
	"bookmarket/internal/http/handlers"
	applog "bookmarket/internal/log"
	"bookmarket/internal/media"
	"bookmarket/internal/repos"
	"bookmarket/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	var uploader media.Uploader = media.Disabled{}
	if cfg.MediaConfigured() {
		cld, err := media.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("cloudinary config error: %v", err)
		}
		uploader = cld
	} else {
		log.Println("[warn] CLOUDINARY_URL not set; listing creation will fail at upload")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			// Avoid leaking internals
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   "Something went wrong. Please try again.",
			})
		},
	})
	// Body guard: a little above the 10 MiB image cap so the per-file
	// check gets to report the taxonomy error first.
	app.Server().MaxRequestBodySize = services.MaxImageBytes + (1 << 20)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowCredentials: true,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, uploader, cfg.JWTSecret)

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Server is running!",
			"timestamp": time.Now().UTC(),
			"cloudinary": fiber.Map{
				"configured": cfg.MediaConfigured(),
			},
		})
	})

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

	// 404 for everything unrouted
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Route not found"})
	})

	log.Printf("Book marketplace API listening on :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

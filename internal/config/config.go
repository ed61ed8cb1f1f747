package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	JWTSecret     string
	CloudinaryURL string
	LogFile       string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using process environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "bookmarket.db"
	} // sqlite file in project root
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("[config] JWT_SECRET not set, using insecure dev default")
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./bookmarket.log"
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		JWTSecret:     secret,
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		LogFile:       logFile,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s cloudinary=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CloudinaryURL != "")
	return cfg
}

// MediaConfigured reports whether an upload collaborator can be built.
func (c Config) MediaConfigured() bool { return c.CloudinaryURL != "" }

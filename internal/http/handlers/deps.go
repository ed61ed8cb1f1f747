package handlers

import (
	"github.com/jmoiron/sqlx"

	"bookmarket/internal/media"
	"bookmarket/internal/repos"
	"bookmarket/internal/services"
)

type Deps struct {
	BookHandler *BookHandler
	AuthHandler *AuthHandler
	Auth        *services.AuthService
}

func NewDeps(db *sqlx.DB, uploader media.Uploader, jwtSecret string) *Deps {
	listingRepo := repos.NewListingRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(listingRepo)
	ingestSvc := services.NewIngestService(listingRepo, uploader)
	authSvc := services.NewAuthService(userRepo, jwtSecret)

	return &Deps{
		BookHandler: &BookHandler{Catalog: catalogSvc, Ingest: ingestSvc},
		AuthHandler: &AuthHandler{Auth: authSvc},
		Auth:        authSvc,
	}
}

package services

import (
	"database/sql"
	"errors"

	"bookmarket/internal/domain"
	"bookmarket/internal/repos"
	"bookmarket/internal/validate"
)

var (
	ErrNotFound      = errors.New("listing not found")
	ErrInvalidStatus = errors.New("status must be available, sold, or reserved")
)

type CatalogService struct {
	Listings *repos.ListingRepo
}

func NewCatalogService(listings *repos.ListingRepo) *CatalogService {
	return &CatalogService{Listings: listings}
}

func (s *CatalogService) Search(f domain.ListingFilter) ([]domain.Listing, error) {
	return s.Listings.Search(f)
}

func (s *CatalogService) Stats() (domain.Stats, error) {
	return s.Listings.Stats()
}

func (s *CatalogService) Get(id string) (domain.Listing, error) {
	l, err := s.Listings.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, ErrNotFound
	}
	return l, err
}

// UpdateStatus is the only mutation a listing sees after creation.
// Repeating the same request is a no-op on the stored state.
func (s *CatalogService) UpdateStatus(id, status string) (domain.Listing, error) {
	status, ok := validate.Status(status)
	if !ok {
		return domain.Listing{}, ErrInvalidStatus
	}
	l, err := s.Listings.UpdateStatus(id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, ErrNotFound
	}
	return l, err
}

package repos

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bookmarket/internal/domain"
)

// tsLayout is fixed-width so lexicographic ORDER BY matches time order.
const tsLayout = "2006-01-02 15:04:05.000000000"

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingCols = `
  id, title, author, department, year, subject, price, condition,
  COALESCE(description,'') AS description, image_url,
  COALESCE(image_public_id,'') AS image_public_id,
  seller_name, seller_email, seller_phone, location,
  COALESCE(status,'available') AS status,
  created_at, COALESCE(updated_at,'') AS updated_at`

// Create assigns the id and timestamps, then inserts. The caller hands
// over an already-validated listing.
func (r *ListingRepo) Create(l *domain.Listing) error {
	l.ID = uuid.NewString()
	now := time.Now().UTC().Format(tsLayout)
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = domain.StatusAvailable
	}
	_, err := r.db.NamedExec(`
	  INSERT INTO listings
	    (id, title, author, department, year, subject, price, condition, description,
	     image_url, image_public_id, seller_name, seller_email, seller_phone, location,
	     status, created_at, updated_at)
	  VALUES
	    (:id, :title, :author, :department, :year, :subject, :price, :condition, :description,
	     :image_url, :image_public_id, :seller_name, :seller_email, :seller_phone, :location,
	     :status, :created_at, :updated_at)
	`, l)
	return err
}

func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var l domain.Listing
	err := r.db.Get(&l, `SELECT `+listingCols+` FROM listings WHERE id = ?`, id)
	return l, err
}

// Search returns every available listing matching the filter, in the
// requested order. No pagination.
func (r *ListingRepo) Search(f domain.ListingFilter) ([]domain.Listing, error) {
	where, args := FilterClause(f)
	out := []domain.Listing{}
	err := r.db.Select(&out, `
	  SELECT `+listingCols+`
	  FROM listings
	  WHERE `+where+`
	  ORDER BY `+SortClause(f.SortBy), args...)
	return out, err
}

// UpdateStatus overwrites the status of one listing and returns the
// updated row. Last write wins; there is no concurrency token.
func (r *ListingRepo) UpdateStatus(id, status string) (domain.Listing, error) {
	res, err := r.db.Exec(`
	  UPDATE listings SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now().UTC().Format(tsLayout), id)
	if err != nil {
		return domain.Listing{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Listing{}, err
	} else if n == 0 {
		return domain.Listing{}, sql.ErrNoRows
	}
	return r.Get(id)
}

// Stats aggregates the same available subset the search sees, for the
// client's filter dropdowns. An empty table yields zeroes and empty
// slices, not an error.
func (r *ListingRepo) Stats() (domain.Stats, error) {
	s := domain.Stats{
		Departments: []string{},
		Years:       []string{},
		Subjects:    []string{},
		Conditions:  []string{},
	}

	var totals struct {
		Total int     `db:"total"`
		Avg   float64 `db:"avg_price"`
		Min   float64 `db:"min_price"`
		Max   float64 `db:"max_price"`
	}
	err := r.db.Get(&totals, `
	  SELECT COUNT(*)               AS total,
	         COALESCE(AVG(price),0) AS avg_price,
	         COALESCE(MIN(price),0) AS min_price,
	         COALESCE(MAX(price),0) AS max_price
	  FROM listings WHERE `+availableOnly)
	if err != nil {
		return s, err
	}
	s.TotalBooks = totals.Total
	s.AvgPrice = totals.Avg
	s.MinPrice = totals.Min
	s.MaxPrice = totals.Max

	for col, dst := range map[string]*[]string{
		"department": &s.Departments,
		"year":       &s.Years,
		"subject":    &s.Subjects,
		"condition":  &s.Conditions,
	} {
		if err := r.db.Select(dst, `
		  SELECT DISTINCT `+col+` FROM listings
		  WHERE `+availableOnly+` ORDER BY `+col); err != nil {
			return s, err
		}
	}
	return s, nil
}

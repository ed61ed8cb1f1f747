package repos

import (
	"strings"

	"bookmarket/internal/domain"
)

// availableOnly keeps sold/reserved listings out of the read path.
// NULL status means the row predates the status column; such rows are
// still shown.
const availableOnly = `(status = 'available' OR status IS NULL)`

// FilterClause composes the WHERE body for a listing search from a set
// of optional criteria. Every criterion is independent and ANDed; the
// free-text search is itself an OR across five fields. The availability
// guard is always present.
func FilterClause(f domain.ListingFilter) (string, []any) {
	where := []string{availableOnly}
	var args []any

	if q := strings.TrimSpace(f.Search); q != "" {
		where = append(where,
			`(LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(seller_name) LIKE ? OR LOWER(description) LIKE ?)`)
		pat := "%" + strings.ToLower(q) + "%"
		args = append(args, pat, pat, pat, pat, pat)
	}
	if f.Department != "" {
		where = append(where, `department = ?`)
		args = append(args, f.Department)
	}
	if f.Year != "" {
		where = append(where, `year = ?`)
		args = append(args, f.Year)
	}
	if f.Subject != "" {
		where = append(where, `subject = ?`)
		args = append(args, f.Subject)
	}
	if f.Condition != "" {
		where = append(where, `condition = ?`)
		args = append(args, f.Condition)
	}
	if f.MinPrice != nil {
		where = append(where, `price >= ?`)
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, `price <= ?`)
		args = append(args, *f.MaxPrice)
	}

	return strings.Join(where, " AND "), args
}

// SortClause maps a sort selector onto an ORDER BY body. Unknown or
// empty selectors fall back to newest-first. Both underscore and hyphen
// spellings of the price selectors are accepted; older clients sent
// the hyphen form.
func SortClause(sortBy string) string {
	switch sortBy {
	case "oldest":
		return `created_at ASC`
	case "price_low", "price-low":
		return `price ASC`
	case "price_high", "price-high":
		return `price DESC`
	case "title":
		return `title COLLATE NOCASE ASC`
	case "author":
		return `author COLLATE NOCASE ASC`
	default: // "newest" and anything unrecognized
		return `created_at DESC`
	}
}

package domain

// Listing statuses. A row with a NULL status predates the status column
// and is treated as available on the read path.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusReserved  = "reserved"
)

// Conditions a seller may declare for a book.
var Conditions = []string{"Like New", "Good", "Fair", "Acceptable"}

type Listing struct {
	ID            string  `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	Author        string  `db:"author" json:"author"`
	Department    string  `db:"department" json:"department"`
	Year          string  `db:"year" json:"year"`
	Subject       string  `db:"subject" json:"subject"`
	Price         float64 `db:"price" json:"price"`
	Condition     string  `db:"condition" json:"condition"`
	Description   string  `db:"description" json:"description"`
	ImageURL      string  `db:"image_url" json:"imageUrl"`
	ImagePublicID string  `db:"image_public_id" json:"imagePublicId"`
	SellerName    string  `db:"seller_name" json:"sellerName"`
	SellerEmail   string  `db:"seller_email" json:"sellerEmail"`
	SellerPhone   string  `db:"seller_phone" json:"sellerPhone"`
	Location      string  `db:"location" json:"location"`
	Status        string  `db:"status" json:"status"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt"`
}

// ListingSummary is the subset returned after a successful creation.
type ListingSummary struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Department string  `json:"department"`
	Year       string  `json:"year"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"imageUrl"`
	CreatedAt  string  `json:"createdAt"`
}

func (l Listing) Summary() ListingSummary {
	return ListingSummary{
		ID:         l.ID,
		Title:      l.Title,
		Author:     l.Author,
		Department: l.Department,
		Year:       l.Year,
		Price:      l.Price,
		ImageURL:   l.ImageURL,
		CreatedAt:  l.CreatedAt,
	}
}

// ListingFilter carries the optional search criteria for a listing
// query. Zero values mean "no constraint"; the price bounds use
// pointers so a zero minimum is still a real bound.
type ListingFilter struct {
	Search     string
	Department string
	Year       string
	Subject    string
	Condition  string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
}

// Stats feeds the client's filter-option dropdowns.
type Stats struct {
	Departments []string `json:"departments"`
	Years       []string `json:"years"`
	Subjects    []string `json:"subjects"`
	Conditions  []string `json:"conditions"`
	TotalBooks  int      `json:"totalBooks"`
	AvgPrice    float64  `json:"avgPrice"`
	MinPrice    float64  `json:"minPrice"`
	MaxPrice    float64  `json:"maxPrice"`
}

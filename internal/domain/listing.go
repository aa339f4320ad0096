package domain

// Listing is a catalog entry. Listings are generated at startup and never mutated.
type Listing struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Locality    string  `json:"locality"`
	Region      string  `json:"region"`
	Description string  `json:"description"`
	NightlyRate int     `json:"nightlyRate"`
	Rating      float64 `json:"rating"`
	ImageRef    string  `json:"imageRef"`
}

const (
	MinNightlyRate = 100
	MaxNightlyRate = 500
	MinRating      = 3.0
	MaxRating      = 5.0
)

// ListingFilter is a conjunction; nil fields are not applied.
type ListingFilter struct {
	Text      string
	MinRate   *int
	MaxRate   *int
	MinRating *float64
}

type ListingsPage struct {
	Items       []Listing `json:"items"`
	Total       int       `json:"total"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
}

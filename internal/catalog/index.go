package catalog

import (
	"strings"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/google/uuid"
)

// ratingEpsilon absorbs float noise when comparing one-decimal ratings.
const ratingEpsilon = 1e-9

// Index is a read-only view over a generated catalog. It is safe for concurrent use
// because nothing mutates it after NewIndex returns.
type Index struct {
	version  string
	listings []domain.Listing
	byID     map[int64]int
	search   []string
}

func NewIndex(listings []domain.Listing) *Index {
	idx := &Index{
		version:  uuid.NewString(),
		listings: make([]domain.Listing, len(listings)),
		byID:     make(map[int64]int, len(listings)),
		search:   make([]string, len(listings)),
	}
	copy(idx.listings, listings)
	for i, l := range idx.listings {
		idx.byID[l.ID] = i
		// \x00 keeps a term from matching across two fields.
		idx.search[i] = strings.ToLower(l.Name + "\x00" + l.Locality + "\x00" + l.Region)
	}
	return idx
}

// Version identifies this catalog instance; it changes on every regeneration.
func (idx *Index) Version() string {
	return idx.version
}

func (idx *Index) Len() int {
	return len(idx.listings)
}

func (idx *Index) Get(id int64) (domain.Listing, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return domain.Listing{}, false
	}
	return idx.listings[i], true
}

// Query filters in generation order and slices out one 1-based page. A page past
// the end yields no items but still reports the true totals.
func (idx *Index) Query(filter domain.ListingFilter, page, pageSize int) (domain.ListingsPage, error) {
	if page < 1 {
		return domain.ListingsPage{}, apperrors.Validation("page must be at least 1")
	}
	if pageSize < 1 {
		return domain.ListingsPage{}, apperrors.Validation("pageSize must be at least 1")
	}

	term := strings.ToLower(filter.Text)
	matched := make([]int, 0, len(idx.listings))
	for i := range idx.listings {
		if idx.matches(i, term, filter) {
			matched = append(matched, i)
		}
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	result := domain.ListingsPage{
		Items:       []domain.Listing{},
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}
	if page > totalPages {
		return result, nil
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	result.Items = make([]domain.Listing, 0, end-start)
	for _, i := range matched[start:end] {
		result.Items = append(result.Items, idx.listings[i])
	}
	return result, nil
}

func (idx *Index) matches(i int, term string, f domain.ListingFilter) bool {
	l := idx.listings[i]
	if term != "" && !strings.Contains(idx.search[i], term) {
		return false
	}
	if f.MinRate != nil && l.NightlyRate < *f.MinRate {
		return false
	}
	if f.MaxRate != nil && l.NightlyRate > *f.MaxRate {
		return false
	}
	if f.MinRating != nil && l.Rating+ratingEpsilon < *f.MinRating {
		return false
	}
	return true
}

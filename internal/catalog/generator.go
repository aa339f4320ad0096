package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
)

type place struct {
	city    string
	country string
}

var places = []place{
	{"New York", "USA"}, {"Los Angeles", "USA"}, {"Chicago", "USA"},
	{"London", "UK"}, {"Manchester", "UK"}, {"Liverpool", "UK"},
	{"Paris", "France"}, {"Lyon", "France"}, {"Marseille", "France"},
	{"Tokyo", "Japan"}, {"Osaka", "Japan"}, {"Kyoto", "Japan"},
	{"Dubai", "UAE"}, {"Abu Dhabi", "UAE"},
	{"Mumbai", "India"}, {"Delhi", "India"}, {"Bangalore", "India"},
	{"Sydney", "Australia"}, {"Melbourne", "Australia"},
	{"Toronto", "Canada"}, {"Vancouver", "Canada"},
	{"Berlin", "Germany"}, {"Munich", "Germany"},
	{"Rome", "Italy"}, {"Milan", "Italy"},
	{"Barcelona", "Spain"}, {"Madrid", "Spain"},
	{"Singapore", "Singapore"},
	{"Bangkok", "Thailand"}, {"Phuket", "Thailand"},
}

var adjectives = []string{
	"Grand", "Royal", "Luxury", "Cozy", "Urban", "Seaside", "Mountain", "Historic", "Modern", "Elite",
	"Premier", "Exclusive", "Boutique", "Elegant", "Charming", "Majestic", "Serene", "Tranquil", "Opulent", "Splendid",
}

var kinds = []string{
	"Hotel", "Resort", "Lodge", "Inn", "Suites", "Palace", "Retreat", "Manor", "Villa", "Hideaway",
}

var images = []string{
	"https://images.unsplash.com/photo-1566073771259-6a8506099945?ixlib=rb-4.0.3&auto=format&fit=crop&w=1170&q=80",
	"https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?ixlib=rb-4.0.3&auto=format&fit=crop&w=1170&q=80",
	"https://images.unsplash.com/photo-1582719508461-905c673771fd?ixlib=rb-4.0.3&auto=format&fit=crop&w=1025&q=80",
	"https://images.unsplash.com/photo-1542314831-068cd1dbfeeb?ixlib=rb-4.0.3&auto=format&fit=crop&w=1170&q=80",
	"https://images.unsplash.com/photo-1585543805890-6051f7829f98?ixlib=rb-4.0.3&auto=format&fit=crop&w=1170&q=80",
	"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?ixlib=rb-4.0.3&auto=format&fit=crop&w=1170&q=80",
	"https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?ixlib=rb-4.0.3&auto=format&fit=crop&w=1049&q=80",
}

// NewRand returns a seeded source when seed is non-zero and an unseeded one otherwise.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Generate returns count listings with ids 1..count in order.
func Generate(count int, rnd *rand.Rand) ([]domain.Listing, error) {
	if count <= 0 {
		return nil, apperrors.Validation(fmt.Sprintf("catalog size must be positive, got %d", count))
	}
	if rnd == nil {
		rnd = NewRand(0)
	}

	rateSpan := domain.MaxNightlyRate - domain.MinNightlyRate + 1
	ratingSteps := int((domain.MaxRating-domain.MinRating)*10) + 1

	listings := make([]domain.Listing, 0, count)
	for i := 1; i <= count; i++ {
		p := places[rnd.IntN(len(places))]
		adj := adjectives[rnd.IntN(len(adjectives))]
		kind := kinds[rnd.IntN(len(kinds))]

		listings = append(listings, domain.Listing{
			ID:       int64(i),
			Name:     fmt.Sprintf("%s %s %s", adj, p.city, kind),
			Locality: p.city,
			Region:   p.country,
			Description: fmt.Sprintf("Experience the best of %s, %s at our %s %s. Top-rated amenities and service.",
				p.city, p.country, strings.ToLower(adj), strings.ToLower(kind)),
			NightlyRate: domain.MinNightlyRate + rnd.IntN(rateSpan),
			Rating:      float64(30+rnd.IntN(ratingSteps)) / 10,
			ImageRef:    images[rnd.IntN(len(images))],
		})
	}
	return listings, nil
}

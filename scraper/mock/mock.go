// Package mock generates a deterministic set of hotels for a city so the
// pipeline can run without network access.
package mock

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"hotel-deals/models"
)

const sourceName = "mock"

var nameSuffixes = []string{"Grand Hotel", "Plaza", "Boutique Stay", "Riverside Inn", "Central Suites"}

// Scraper is a Source that never touches the network.
type Scraper struct{}

func New() *Scraper { return &Scraper{} }

func (s *Scraper) Name() string { return sourceName }

// Scrape returns five hotels whose ratings (7.0-9.4) and USD prices
// (25-120) depend only on the city name.
func (s *Scraper) Scrape(ctx context.Context, city string) ([]*models.RawListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed(city)))
	now := time.Now()
	listings := make([]*models.RawListing, 0, len(nameSuffixes))

	for i, suffix := range nameSuffixes {
		rating := round(7.0+rng.Float64()*2.4, 1)
		price := round(25+rng.Float64()*95, 2)

		listings = append(listings, &models.RawListing{
			Title:     fmt.Sprintf("%s %s", city, suffix),
			RawPrice:  fmt.Sprintf("USD %.2f", price),
			RawRating: fmt.Sprintf("%.1f", rating),
			City:      city,
			URL:       fmt.Sprintf("mock://hotels/%s/%d", url.PathEscape(strings.ToLower(city)), i+1),
			Source:    sourceName,
			ScrapedAt: now,
		})
	}
	return listings, nil
}

func seed(city string) int64 {
	var sum int64
	for _, r := range strings.ToLower(city) {
		sum += int64(r)
	}
	return sum
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

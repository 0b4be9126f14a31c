// Package scraper fetches hotel search results. Each Source turns a city
// into raw listings; the concrete sites live in sub-packages.
package scraper

import (
	"context"

	"hotel-deals/models"
)

// Fetcher retrieves the body behind a URL in a single attempt.
// Failures are reported as utils network errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Source produces raw listings for a city.
type Source interface {
	Name() string
	Scrape(ctx context.Context, city string) ([]*models.RawListing, error)
}

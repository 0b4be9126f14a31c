// Package hotelapi reads hotels from a JSON hotel listing API such as
// random-data-api.com's /api/v2/hotels endpoint.
package hotelapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hotel-deals/models"
	"hotel-deals/scraper"
	"hotel-deals/utils"
)

const sourceName = "hotelapi"

// Scraper queries the API once per run.
type Scraper struct {
	fetcher  scraper.Fetcher
	endpoint string
	size     int
	currency string
	logger   *utils.Logger
}

// New creates a hotel API Scraper. Prices from the API carry no currency,
// so every listing is tagged USD.
func New(fetcher scraper.Fetcher, endpoint string, size int, logger *utils.Logger) *Scraper {
	return &Scraper{
		fetcher:  fetcher,
		endpoint: endpoint,
		size:     size,
		currency: "USD",
		logger:   logger,
	}
}

func (s *Scraper) Name() string { return sourceName }

func (s *Scraper) Scrape(ctx context.Context, city string) ([]*models.RawListing, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid hotel api url %q: %w", s.endpoint, err)
	}
	q := u.Query()
	q.Set("size", strconv.Itoa(s.size))
	u.RawQuery = q.Encode()

	s.logger.Info("[hotelapi] Requesting %d hotels for %s", s.size, city)
	body, err := s.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}
	return s.Parse(body, city, u.String())
}

// Parse decodes either a single hotel object or an array of them.
// Entries without a name are skipped.
func (s *Scraper) Parse(body []byte, city, sourceURL string) ([]*models.RawListing, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, utils.ParseError("decode hotel api response: %w", err)
	}

	var items []any
	switch v := payload.(type) {
	case map[string]any:
		items = []any{v}
	case []any:
		items = v
	default:
		return nil, utils.ParseError("unexpected hotel api payload of type %T", payload)
	}

	now := time.Now()
	listings := make([]*models.RawListing, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			s.logger.Warn("[hotelapi] Entry %d is not an object, skipping", i)
			continue
		}

		name := stringField(obj, "name")
		if name == "" {
			name = stringField(obj, "hotel_name")
		}
		if name == "" {
			s.logger.Debug("[hotelapi] Entry %d has no name, skipping", i)
			continue
		}

		price := stringField(obj, "price")
		if price != "" {
			price = s.currency + " " + price
		}

		listings = append(listings, &models.RawListing{
			Title:     name,
			RawPrice:  price,
			RawRating: stringField(obj, "rating"),
			City:      city,
			URL:       sourceURL,
			Source:    sourceName,
			ScrapedAt: now,
		})
	}

	s.logger.Info("[hotelapi] Decoded %d raw listings", len(listings))
	return listings, nil
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool, nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

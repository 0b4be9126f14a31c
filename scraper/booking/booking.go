// Package booking scrapes hotel cards from a booking.com style search
// results page.
package booking

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"hotel-deals/config"
	"hotel-deals/models"
	"hotel-deals/scraper"
	"hotel-deals/utils"
)

const sourceName = "booking"

// priceTextRegexp matches a currency marker directly followed by a digit.
var priceTextRegexp = regexp.MustCompile(`(?i)(\$|€|£|AED|SAR|OMR|USD|GBP|EUR|INR|₹|ر\.ع\.|﷼)\s*[0-9]`)

// Scraper fetches one search results page per run and extracts its cards.
type Scraper struct {
	fetcher   scraper.Fetcher
	searchURL string
	sel       config.Selectors
	logger    *utils.Logger
}

// New creates a booking Scraper.
func New(fetcher scraper.Fetcher, searchURL string, sel config.Selectors, logger *utils.Logger) *Scraper {
	return &Scraper{
		fetcher:   fetcher,
		searchURL: searchURL,
		sel:       sel,
		logger:    logger,
	}
}

func (s *Scraper) Name() string { return sourceName }

// SearchURL returns the results page URL for a city.
func (s *Scraper) SearchURL(city string) (string, error) {
	u, err := url.Parse(s.searchURL)
	if err != nil {
		return "", fmt.Errorf("invalid search url %q: %w", s.searchURL, err)
	}
	q := u.Query()
	q.Set("ss", city)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Scraper) Scrape(ctx context.Context, city string) ([]*models.RawListing, error) {
	pageURL, err := s.SearchURL(city)
	if err != nil {
		return nil, err
	}

	s.logger.Info("[booking] Searching hotels in %s", city)
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return s.Parse(body, city, pageURL)
}

// Parse extracts raw listings from a results page. Cards matched by the
// configured selectors win; when there are none, the page is scanned for
// price-like text and names are inferred from the surrounding container.
func (s *Scraper) Parse(body []byte, city, pageURL string) ([]*models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, utils.ParseError("read results page: %w", err)
	}

	base, _ := url.Parse(pageURL)
	now := time.Now()

	listings := s.parseCards(doc, city, base, now)
	if len(listings) == 0 {
		s.logger.Warn("[booking] No property cards matched %q, scanning for price text", s.sel.Card)
		listings = s.parseGeneral(doc, city, base, now)
	}

	if len(listings) == 0 {
		return nil, utils.ParseError("no hotel listings recognised on %s", pageURL)
	}

	s.logger.Info("[booking] Extracted %d raw listings", len(listings))
	return listings, nil
}

func (s *Scraper) parseCards(doc *goquery.Document, city string, base *url.URL, now time.Time) []*models.RawListing {
	var listings []*models.RawListing

	doc.Find(s.sel.Card).Each(func(i int, card *goquery.Selection) {
		name := collapse(card.Find(s.sel.Title).First().Text())
		if name == "" {
			s.logger.Debug("[booking] Card %d has no title, skipping", i)
			return
		}

		href, _ := card.Find(s.sel.Link).First().Attr("href")
		listings = append(listings, &models.RawListing{
			Title:     name,
			RawPrice:  collapse(card.Find(s.sel.Price).First().Text()),
			RawRating: collapse(card.Find(s.sel.Rating).First().Text()),
			City:      city,
			URL:       resolve(base, href),
			Source:    sourceName,
			ScrapedAt: now,
		})
	})

	return listings
}

func (s *Scraper) parseGeneral(doc *goquery.Document, city string, base *url.URL, now time.Time) []*models.RawListing {
	var listings []*models.RawListing
	seen := make(map[*html.Node]struct{})

	doc.Find("body *").Each(func(_ int, el *goquery.Selection) {
		for _, priceText := range ownText(el) {
			if !priceTextRegexp.MatchString(priceText) {
				continue
			}

			container := el.Closest(s.sel.FallbackContainers)
			if container.Length() == 0 {
				continue
			}
			if _, dup := seen[container.Get(0)]; dup {
				continue
			}

			name := s.findName(container)
			if name == "" {
				continue
			}
			seen[container.Get(0)] = struct{}{}

			href, _ := container.Find("a[href]").First().Attr("href")
			listings = append(listings, &models.RawListing{
				Title:     name,
				RawPrice:  collapse(priceText),
				RawRating: collapse(container.Find(s.sel.Rating).First().Text()),
				City:      city,
				URL:       resolve(base, href),
				Source:    sourceName,
				ScrapedAt: now,
			})
		}
	})

	return listings
}

func (s *Scraper) findName(container *goquery.Selection) string {
	for _, sel := range s.sel.FallbackNames {
		name := collapse(container.Find(sel).First().Text())
		if utf8.RuneCountInString(name) > 2 {
			return name
		}
	}
	return ""
}

// ownText returns the text nodes that are direct children of the selection.
func ownText(el *goquery.Selection) []string {
	var out []string
	for _, n := range el.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				if t := strings.TrimSpace(c.Data); t != "" {
					out = append(out, t)
				}
			}
		}
	}
	return out
}

func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil {
		return href
	}
	if href == "" {
		return base.String()
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

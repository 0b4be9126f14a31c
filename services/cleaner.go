package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"hotel-deals/models"
	"hotel-deals/utils"
)

var (
	// amountRegexp captures the first number, allowing , and . separators
	amountRegexp = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)*`)
	// nightsRegexp captures "X nights" or "X night" patterns
	nightsRegexp = regexp.MustCompile(`(?i)(\d+)\s*nights?`)
	// isoCurrencyRegexp captures a bare three-letter currency code
	isoCurrencyRegexp = regexp.MustCompile(`\b([A-Z]{3})\b`)
)

// currencySymbols is checked in order; the first marker found wins.
var currencySymbols = []struct {
	marker string
	code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"﷼", "OMR"},
	{"ر.ع.", "OMR"},
	{"AED", "AED"},
	{"SAR", "SAR"},
	{"OMR", "OMR"},
	{"₹", "INR"},
}

const maxRating = 10

// Cleaner transforms RawListings into clean, validated Listings.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts raw listings into Listings. A record without a name or a
// readable price is skipped; records repeating a name+URL pair are dropped.
// It fails only when there was input and none of it survived.
func (c *Cleaner) Clean(raw []*models.RawListing) ([]*models.Listing, error) {
	seen := utils.NewKeySet()
	result := make([]*models.Listing, 0, len(raw))

	for _, r := range raw {
		name := normaliseText(r.Title)
		if name == "" {
			c.logger.Warn("[cleaner] Dropping listing with empty name (%s)", r.URL)
			continue
		}

		price, ok := c.parsePrice(r.RawPrice)
		if !ok {
			c.logger.Warn("[cleaner] Dropping %q: unreadable price %q", name, r.RawPrice)
			continue
		}

		url := strings.TrimSpace(r.URL)
		if !seen.Add(name, url) {
			c.logger.Debug("[cleaner] Duplicate skipped: %s", name)
			continue
		}

		result = append(result, &models.Listing{
			Name:      name,
			Price:     price,
			Currency:  ParseCurrency(r.RawPrice),
			Rating:    c.parseRating(r.RawRating),
			City:      normaliseText(r.City),
			SourceURL: url,
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))

	if len(raw) > 0 && len(result) == 0 {
		return nil, utils.ParseError("all %d scraped listings were malformed", len(raw))
	}
	return result, nil
}

// parsePrice extracts a price and converts multi-night totals to a nightly rate.
// Examples:
//
//	"US$150"             → 150
//	"OMR 1,200"          → 1200
//	"€450 for 3 nights"  → 150
func (c *Cleaner) parsePrice(raw string) (float64, bool) {
	var nights int
	if m := nightsRegexp.FindStringSubmatch(raw); len(m) >= 2 {
		nights, _ = strconv.Atoi(m[1])
	}

	// drop the "N nights" phrase so its count is not taken as the amount
	total, ok := ParseAmount(nightsRegexp.ReplaceAllString(raw, " "))
	if !ok {
		return 0, false
	}

	if nights > 1 {
		perNight := total / float64(nights)
		c.logger.Debug("[cleaner] Multi-night price detected: %.2f for %d nights = %.2f/night",
			total, nights, perNight)
		return perNight, true
	}
	return total, true
}

// parseRating extracts the first number as a 0-10 review score.
// Missing or out-of-range ratings become 0.
func (c *Cleaner) parseRating(raw string) float64 {
	val, ok := ParseAmount(raw)
	if !ok || val < 0 || val > maxRating {
		return 0
	}
	return val
}

// ParseAmount returns the first number in s. Commas are treated as
// thousands separators.
func ParseAmount(s string) (float64, bool) {
	match := amountRegexp.FindString(s)
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// ParseCurrency maps a currency symbol or ISO code in s to its ISO code.
// Returns "" when none is present.
func ParseCurrency(s string) string {
	for _, cs := range currencySymbols {
		if strings.Contains(s, cs.marker) {
			return cs.code
		}
	}
	if m := isoCurrencyRegexp.FindStringSubmatch(s); len(m) >= 2 {
		return m[1]
	}
	return ""
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

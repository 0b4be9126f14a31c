package services

import (
	"fmt"
	"sort"
	"strings"

	"hotel-deals/models"
	"hotel-deals/utils"
)

// Analyzer filters listings by budget and ranks the rest by value.
type Analyzer struct {
	logger *utils.Logger
}

func NewAnalyzer(logger *utils.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze keeps listings priced at or under the budget, flags those below
// the retained set's mean price and orders them by rating per unit of price.
// The input listings are not modified.
func (a *Analyzer) Analyze(city string, listings []*models.Listing, budget models.Budget) *models.Report {
	report := &models.Report{
		City:            city,
		Budget:          budget,
		TotalFound:      len(listings),
		Listings:        make([]*models.RankedListing, 0, len(listings)),
		CurrencyWarning: currencyWarning(listings, budget),
	}

	if avg, ok := meanPrice(listings); ok {
		report.OverallAverage = &avg
	}

	var retained []*models.Listing
	for _, l := range listings {
		if l.Price <= budget.Amount {
			retained = append(retained, l)
		}
	}
	report.Excluded = len(listings) - len(retained)

	a.logger.Info("[analyzer] %d of %d listings within budget %.2f",
		len(retained), len(listings), budget.Amount)

	market, ok := meanPrice(retained)
	if !ok {
		return report
	}
	report.MarketAverage = &market

	report.MinPrice = retained[0].Price
	report.MaxPrice = retained[0].Price
	for _, l := range retained {
		if l.Price < report.MinPrice {
			report.MinPrice = l.Price
		}
		if l.Price > report.MaxPrice {
			report.MaxPrice = l.Price
		}

		report.Listings = append(report.Listings, &models.RankedListing{
			Listing:     *l,
			BelowMarket: l.Price < market,
			ValueScore:  ValueScore(l.Rating, l.Price),
		})
	}

	sort.SliceStable(report.Listings, func(i, j int) bool {
		return rankedBefore(report.Listings[i], report.Listings[j])
	})
	for i, r := range report.Listings {
		r.Rank = i + 1
	}
	report.BestValue = report.Listings[0]

	return report
}

// ValueScore is rating divided by price; a non-positive price scores 0.
func ValueScore(rating, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return rating / price
}

// rankedBefore orders by value score, then rating (higher first), then
// price (lower first), then name.
func rankedBefore(a, b *models.RankedListing) bool {
	if a.ValueScore != b.ValueScore {
		return a.ValueScore > b.ValueScore
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.Name < b.Name
}

func meanPrice(listings []*models.Listing) (float64, bool) {
	if len(listings) == 0 {
		return 0, false
	}
	var total float64
	for _, l := range listings {
		total += l.Price
	}
	return total / float64(len(listings)), true
}

func currencyWarning(listings []*models.Listing, budget models.Budget) string {
	if budget.Currency == "" {
		return ""
	}

	found := make(map[string]struct{})
	var codes []string
	for _, l := range listings {
		if l.Currency == "" {
			continue
		}
		if _, ok := found[l.Currency]; !ok {
			found[l.Currency] = struct{}{}
			codes = append(codes, l.Currency)
		}
	}
	if len(found) == 0 {
		return ""
	}
	if _, ok := found[budget.Currency]; ok {
		return ""
	}

	sort.Strings(codes)
	return fmt.Sprintf("Budget currency %s may not match results (found %s)",
		budget.Currency, strings.Join(codes, ", "))
}

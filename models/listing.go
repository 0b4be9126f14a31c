package models

import "time"

// RawListing holds unprocessed scraped fields exactly as the source
// presented them. The Cleaner turns these into Listings.
type RawListing struct {
	Title     string
	RawPrice  string
	RawRating string
	City      string
	URL       string
	Source    string
	ScrapedAt time.Time
}

// Listing is a cleaned hotel record. It is not modified after the Cleaner
// creates it; the Analyzer wraps it in a RankedListing instead.
type Listing struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Rating    float64 `json:"rating"`
	City      string  `json:"city"`
	SourceURL string  `json:"source_url"`
}

// RankedListing is a Listing annotated by the Analyzer.
type RankedListing struct {
	Listing
	Rank        int     `json:"-"`
	BelowMarket bool    `json:"below_market"`
	ValueScore  float64 `json:"value_score"`
}

// Budget is the user's maximum price, optionally tagged with a currency.
type Budget struct {
	Amount   float64
	Currency string
}

// Report holds the Analyzer's output for one run.
type Report struct {
	City   string
	Budget Budget

	TotalFound int
	Excluded   int

	// OverallAverage is over every found listing; MarketAverage only over
	// the retained ones and is nil when nothing was retained.
	OverallAverage  *float64
	MarketAverage   *float64
	MinPrice        float64
	MaxPrice        float64
	BestValue       *RankedListing
	Listings        []*RankedListing
	CurrencyWarning string
}

// RunSummary is a persisted run as listed by the history command.
type RunSummary struct {
	ID            int64
	City          string
	Budget        float64
	Currency      string
	Source        string
	Retained      int
	MarketAverage *float64
	BestValue     string
	CreatedAt     time.Time
}

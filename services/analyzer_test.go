package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hotel-deals/models"
)

func scenarioListings() []*models.Listing {
	return []*models.Listing{
		{Name: "A", Price: 100, Rating: 4, City: "Muscat", Currency: "USD", SourceURL: "https://x.test/a"},
		{Name: "B", Price: 150, Rating: 4.5, City: "Muscat", Currency: "USD", SourceURL: "https://x.test/b"},
		{Name: "C", Price: 80, Rating: 3, City: "Muscat", Currency: "USD", SourceURL: "https://x.test/c"},
	}
}

func TestAnalyzeScenario(t *testing.T) {
	a := NewAnalyzer(newTestLogger())
	r := a.Analyze("Muscat", scenarioListings(), models.Budget{Amount: 120})

	require.Equal(t, 3, r.TotalFound)
	require.Equal(t, 1, r.Excluded)
	require.NotNil(t, r.MarketAverage)
	require.InDelta(t, 90.0, *r.MarketAverage, 1e-9)
	require.NotNil(t, r.OverallAverage)
	require.InDelta(t, 110.0, *r.OverallAverage, 1e-9)

	require.Len(t, r.Listings, 2)
	first, second := r.Listings[0], r.Listings[1]

	require.Equal(t, "A", first.Name)
	require.False(t, first.BelowMarket)
	require.InDelta(t, 0.04, first.ValueScore, 1e-12)
	require.Equal(t, 1, first.Rank)

	require.Equal(t, "C", second.Name)
	require.True(t, second.BelowMarket)
	require.InDelta(t, 0.0375, second.ValueScore, 1e-12)
	require.Equal(t, 2, second.Rank)

	require.Same(t, first, r.BestValue)
	require.Equal(t, 80.0, r.MinPrice)
	require.Equal(t, 100.0, r.MaxPrice)
}

func TestAnalyzeProperties(t *testing.T) {
	listings := []*models.Listing{
		{Name: "P1", Price: 55, Rating: 8.2},
		{Name: "P2", Price: 200, Rating: 9.5},
		{Name: "P3", Price: 120, Rating: 7.1},
		{Name: "P4", Price: 120, Rating: 9.0},
		{Name: "P5", Price: 30, Rating: 6.0},
		{Name: "P6", Price: 121, Rating: 10},
	}
	budget := models.Budget{Amount: 120}

	r := NewAnalyzer(newTestLogger()).Analyze("X", listings, budget)

	var sum float64
	for _, l := range r.Listings {
		require.LessOrEqual(t, l.Price, budget.Amount, "%s over budget", l.Name)
		sum += l.Price
	}
	mean := sum / float64(len(r.Listings))

	for i, l := range r.Listings {
		require.Equal(t, l.Price < mean, l.BelowMarket, "%s below market flag", l.Name)
		require.InDelta(t, l.Rating/l.Price, l.ValueScore, 1e-12)
		if i > 0 {
			require.GreaterOrEqual(t, r.Listings[i-1].ValueScore, l.ValueScore)
		}
	}
	require.Len(t, r.Listings, 4)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	listings := scenarioListings()
	r := NewAnalyzer(newTestLogger()).Analyze("Muscat", listings, models.Budget{Amount: 120})

	r.Listings[0].Name = "changed"
	require.Equal(t, "A", listings[0].Name)
}

func TestAnalyzeEmptyResult(t *testing.T) {
	r := NewAnalyzer(newTestLogger()).Analyze("Muscat", scenarioListings(), models.Budget{Amount: 10})

	require.Empty(t, r.Listings)
	require.NotNil(t, r.Listings, "empty, not nil, so JSON export writes []")
	require.Nil(t, r.MarketAverage)
	require.Nil(t, r.BestValue)
	require.Equal(t, 3, r.Excluded)
}

func TestAnalyzeNoInput(t *testing.T) {
	r := NewAnalyzer(newTestLogger()).Analyze("Muscat", nil, models.Budget{Amount: 10})
	require.Equal(t, 0, r.TotalFound)
	require.Nil(t, r.OverallAverage)
	require.Empty(t, r.Listings)
}

func TestAnalyzeZeroPrice(t *testing.T) {
	listings := []*models.Listing{
		{Name: "Free", Price: 0, Rating: 9},
		{Name: "Paid", Price: 50, Rating: 5},
	}
	r := NewAnalyzer(newTestLogger()).Analyze("X", listings, models.Budget{Amount: 100})

	require.Len(t, r.Listings, 2)
	require.Equal(t, "Paid", r.Listings[0].Name)
	require.Equal(t, 0.0, r.Listings[1].ValueScore)
	require.True(t, r.Listings[1].BelowMarket)
}

func TestAnalyzeTieBreak(t *testing.T) {
	listings := []*models.Listing{
		{Name: "Zeta", Price: 100, Rating: 5},
		{Name: "Beta", Price: 50, Rating: 2.5},
		{Name: "Alpha", Price: 100, Rating: 5},
	}
	r := NewAnalyzer(newTestLogger()).Analyze("X", listings, models.Budget{Amount: 100})

	names := []string{r.Listings[0].Name, r.Listings[1].Name, r.Listings[2].Name}
	require.Equal(t, []string{"Alpha", "Zeta", "Beta"}, names)
}

func TestCurrencyWarning(t *testing.T) {
	listings := scenarioListings()

	r := NewAnalyzer(newTestLogger()).Analyze("Muscat", listings, models.Budget{Amount: 120, Currency: "OMR"})
	require.Equal(t, "Budget currency OMR may not match results (found USD)", r.CurrencyWarning)

	r = NewAnalyzer(newTestLogger()).Analyze("Muscat", listings, models.Budget{Amount: 120, Currency: "USD"})
	require.Empty(t, r.CurrencyWarning)

	r = NewAnalyzer(newTestLogger()).Analyze("Muscat", listings, models.Budget{Amount: 120})
	require.Empty(t, r.CurrencyWarning)
}

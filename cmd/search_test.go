package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotel-deals/config"
	"hotel-deals/utils"
)

const scenarioPage = `
<html><body>
  <div data-testid="property-card">
    <a data-testid="title-link" href="/hotel/a.html"><div data-testid="title">A</div></a>
    <div data-testid="review-score">4</div>
    <span data-testid="price-and-discounted-price">US$100</span>
  </div>
  <div data-testid="property-card">
    <a data-testid="title-link" href="/hotel/b.html"><div data-testid="title">B</div></a>
    <div data-testid="review-score">4.5</div>
    <span data-testid="price-and-discounted-price">US$150</span>
  </div>
  <div data-testid="property-card">
    <a data-testid="title-link" href="/hotel/c.html"><div data-testid="title">C</div></a>
    <div data-testid="review-score">3</div>
    <span data-testid="price-and-discounted-price">US$80</span>
  </div>
</body></html>`

func testConfig(t *testing.T, searchURL string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Source:         "booking",
		SearchURL:      searchURL,
		RequestTimeout: 5 * time.Second,
		CSVOutputPath:  filepath.Join(dir, "budget_hotels.csv"),
		JSONOutputPath: filepath.Join(dir, "budget_hotels.json"),
	}
}

func TestRunSearchScenario(t *testing.T) {
	var gotCity string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("ss")
		_, _ = w.Write([]byte(scenarioPage))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/searchresults.html")
	var out bytes.Buffer
	err := runSearch(context.Background(), cfg,
		searchOptions{city: "Muscat", budget: "120"}, utils.Discard(), &out)
	require.NoError(t, err)
	require.Equal(t, "Muscat", gotCity)

	f, err := os.Open(cfg.CSVOutputPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	require.Equal(t, []string{"A", "100", "4", "false", "0.04", "Muscat", srv.URL + "/hotel/a.html", "USD"}, rows[1])
	require.Equal(t, []string{"C", "80", "3", "true", "0.0375", "Muscat", srv.URL + "/hotel/c.html", "USD"}, rows[2])

	data, err := os.ReadFile(cfg.JSONOutputPath)
	require.NoError(t, err)
	var objs []map[string]any
	require.NoError(t, json.Unmarshal(data, &objs))
	require.Len(t, objs, 2)
	require.Equal(t, "A", objs[0]["name"])
	require.Equal(t, true, objs[1]["below_market"])

	require.Contains(t, out.String(), "Best Value: A")
}

func TestRunSearchNothingUnderBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(scenarioPage))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	err := runSearch(context.Background(), cfg,
		searchOptions{city: "Muscat", budget: "10", quiet: true}, utils.Discard(), &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.CSVOutputPath)
	require.NoError(t, err)
	require.Equal(t, "name,price,rating,below_market,value_score,city,source_url,currency\n", string(data))

	data, err = os.ReadFile(cfg.JSONOutputPath)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(data))
}

func TestRunSearchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	err := runSearch(context.Background(), cfg,
		searchOptions{city: "Muscat", budget: "120"}, utils.Discard(), &bytes.Buffer{})
	require.ErrorIs(t, err, utils.ErrNetwork)

	stage, ok := utils.StageOf(err)
	require.True(t, ok)
	require.Equal(t, utils.StageNetwork, stage)

	_, statErr := os.Stat(cfg.CSVOutputPath)
	require.True(t, os.IsNotExist(statErr), "no output on failure")
}

func TestRunSearchParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>captcha</body></html>"))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	err := runSearch(context.Background(), cfg,
		searchOptions{city: "Muscat", budget: "120"}, utils.Discard(), &bytes.Buffer{})
	require.ErrorIs(t, err, utils.ErrParse)
}

func TestRunSearchExportFailure(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Source = "mock"
	cfg.CSVOutputPath = t.TempDir()

	err := runSearch(context.Background(), cfg,
		searchOptions{city: "Lisbon", budget: "500", quiet: true}, utils.Discard(), &bytes.Buffer{})
	require.ErrorIs(t, err, utils.ErrIO)
}

func TestRunSearchMockSource(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Source = "mock"

	err := runSearch(context.Background(), cfg,
		searchOptions{city: "Lisbon", budget: "500 USD", quiet: true}, utils.Discard(), &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.JSONOutputPath)
	require.NoError(t, err)
	var objs []map[string]any
	require.NoError(t, json.Unmarshal(data, &objs))
	require.Len(t, objs, 5)
}

func TestRunSearchBadInput(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Source = "mock"

	err := runSearch(context.Background(), cfg, searchOptions{city: " ", budget: "100"}, utils.Discard(), &bytes.Buffer{})
	require.Error(t, err)

	err = runSearch(context.Background(), cfg, searchOptions{city: "Rome", budget: "lots"}, utils.Discard(), &bytes.Buffer{})
	require.Error(t, err)

	cfg.Source = "expedia"
	err = runSearch(context.Background(), cfg, searchOptions{city: "Rome", budget: "100"}, utils.Discard(), &bytes.Buffer{})
	require.ErrorContains(t, err, "unknown listing source")
}

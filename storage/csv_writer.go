package storage

import (
	"encoding/csv"
	"os"
	"strconv"

	"hotel-deals/models"
)

// CSVHeader is the column order of the exported CSV file.
var CSVHeader = []string{
	"name", "price", "rating", "below_market", "value_score", "city", "source_url", "currency",
}

// CSVWriter exports ranked listings to a CSV file, one row per listing
// in rank order.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

func (c *CSVWriter) Path() string { return c.path }

// Export truncates the file and writes the header plus all rows. An empty
// slice produces a header-only file.
func (c *CSVWriter) Export(listings []*models.RankedListing) error {
	return withFile(c.path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(CSVHeader); err != nil {
			return err
		}

		for _, l := range listings {
			if err := w.Write(csvRow(l)); err != nil {
				return err
			}
		}

		w.Flush()
		return w.Error()
	})
}

func csvRow(l *models.RankedListing) []string {
	return []string{
		l.Name,
		formatFloat(l.Price),
		formatFloat(l.Rating),
		strconv.FormatBool(l.BelowMarket),
		formatFloat(l.ValueScore),
		l.City,
		l.SourceURL,
		l.Currency,
	}
}

// formatFloat uses the shortest representation that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

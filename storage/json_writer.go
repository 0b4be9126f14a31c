package storage

import (
	"encoding/json"
	"os"

	"hotel-deals/models"
)

// JSONWriter exports ranked listings as an indented JSON array.
type JSONWriter struct {
	path string
}

func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

func (j *JSONWriter) Path() string { return j.path }

// Export writes listings in rank order; nil or empty input yields [].
func (j *JSONWriter) Export(listings []*models.RankedListing) error {
	if listings == nil {
		listings = []*models.RankedListing{}
	}

	return withFile(j.path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	})
}

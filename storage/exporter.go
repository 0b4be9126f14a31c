package storage

import (
	"hotel-deals/models"
	"hotel-deals/utils"
)

// Exporter writes the same ranked listings through several exporters.
type Exporter struct {
	writers []ListingExporter
	logger  *utils.Logger
}

// NewExporter returns the standard CSV + JSON exporter pair.
func NewExporter(csvPath, jsonPath string, logger *utils.Logger) *Exporter {
	return &Exporter{
		writers: []ListingExporter{NewCSVWriter(csvPath), NewJSONWriter(jsonPath)},
		logger:  logger,
	}
}

// Export stops at the first failing writer.
func (e *Exporter) Export(listings []*models.RankedListing) error {
	for _, w := range e.writers {
		if err := w.Export(listings); err != nil {
			return err
		}
		e.logger.Info("[export] Wrote %d listings to %s", len(listings), w.Path())
	}
	return nil
}

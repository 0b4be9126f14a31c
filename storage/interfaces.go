package storage

import (
	"context"

	"hotel-deals/models"
)

// ListingExporter is the interface any export format must satisfy.
type ListingExporter interface {
	Export(listings []*models.RankedListing) error
	Path() string
}

// RunStore persists analysed runs between invocations.
type RunStore interface {
	SaveRun(ctx context.Context, source string, report *models.Report) (int64, error)
	Recent(ctx context.Context, limit int) ([]*models.RunSummary, error)
	Close() error
}

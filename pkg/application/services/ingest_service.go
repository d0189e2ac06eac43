package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mdlane/campstock/pkg/domain/repositories"
	domainservices "github.com/mdlane/campstock/pkg/domain/services"
	"github.com/mdlane/campstock/pkg/infrastructure/tabular"
)

// IngestService turns raw CSV text into normalized records and replaces
// the stored dataset wholesale. There is no incremental path: each
// ingest is all-or-nothing for its dataset and leaves the other dataset
// untouched.
type IngestService struct {
	datasets   repositories.DatasetRepository
	normalizer *domainservices.Normalizer
	log        *logrus.Logger
}

// NewIngestService creates an ingest service. A nil normalizer uses the
// default exclusion list.
func NewIngestService(datasets repositories.DatasetRepository, normalizer *domainservices.Normalizer, log *logrus.Logger) *IngestService {
	if normalizer == nil {
		normalizer = domainservices.NewNormalizer(nil)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &IngestService{datasets: datasets, normalizer: normalizer, log: log}
}

// IngestSales parses and normalizes a sales export and replaces the
// sales dataset. Returns the number of records stored.
func (s *IngestService) IngestSales(ctx context.Context, text string) (int, error) {
	rows := tabular.Parse(text)
	records, stats := s.normalizer.NormalizeSales(rows)
	s.logStats("sales", stats)

	if err := s.datasets.SaveSales(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to store sales dataset: %w", err)
	}
	return len(records), nil
}

// IngestInventory repairs, parses and normalizes an inventory count
// export and replaces the inventory dataset. The repair pass runs
// exactly once, before parsing. Returns the number of records stored.
func (s *IngestService) IngestInventory(ctx context.Context, text string) (int, error) {
	repaired := tabular.RepairInventoryText(text)
	rows := tabular.Parse(repaired)
	records, stats := s.normalizer.NormalizeInventory(rows)
	s.logStats("inventory", stats)

	if err := s.datasets.SaveInventory(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to store inventory dataset: %w", err)
	}
	return len(records), nil
}

func (s *IngestService) logStats(dataset string, stats domainservices.Stats) {
	entry := s.log.WithFields(logrus.Fields{
		"dataset":  dataset,
		"rows":     stats.Total,
		"kept":     stats.Kept,
		"badDates": stats.BadDates,
		"excluded": stats.Excluded,
	})
	entry.Info("dataset normalized")

	// Rows still narrower than the header after repair point at the
	// rejoin heuristic having misjudged a row boundary.
	if stats.ShortRows > 0 {
		s.log.WithFields(logrus.Fields{
			"dataset": dataset,
			"rows":    stats.ShortRows,
		}).Warn("rows with cell count below header were skipped")
	}
}

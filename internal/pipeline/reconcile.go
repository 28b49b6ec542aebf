package pipeline

import (
	"strings"

	"barfops/internal"
	"barfops/internal/catalog"
	"barfops/internal/storage"
)

// ReconcileService resolves stored inventory records and free-form lines
// against the current catalog.
type ReconcileService struct {
	db *storage.DB
}

func NewReconcileService(db *storage.DB) *ReconcileService {
	return &ReconcileService{db: db}
}

type ReconcileSummary struct {
	Total     int
	Matched   int
	Unmatched int
}

// ReconcileInventory matches every inventory record against the catalog and
// stores the resolved display name. Only an unambiguous single hit counts as
// matched; zero or multiple hits clear the resolution for manual review.
func (s *ReconcileService) ReconcileInventory() (ReconcileSummary, error) {
	var summary ReconcileSummary

	records, err := s.db.ListInventoryRecords()
	if err != nil {
		return summary, err
	}
	items, err := s.db.ListCatalogItems()
	if err != nil {
		return summary, err
	}
	idx := catalog.BuildIndex(items)

	for _, row := range records {
		summary.Total++
		matches := idx.MatchRecord(row.Record)
		if len(matches) == 1 {
			display := catalog.Display(matches[0])
			if err := s.db.UpdateInventoryResolution(row.ID, &display); err != nil {
				return summary, err
			}
			summary.Matched++
			continue
		}
		if err := s.db.UpdateInventoryResolution(row.ID, nil); err != nil {
			return summary, err
		}
		summary.Unmatched++
	}

	return summary, nil
}

// LineResolution is the normalized view of one free-form product line.
type LineResolution struct {
	Key       internal.CatalogKey
	Display   string
	Legacy    internal.LegacyRecord
	InCatalog bool
}

// ResolveLine normalizes a single product line, optionally with its selected
// option, and reports whether the resulting key exists in the catalog.
func (s *ReconcileService) ResolveLine(text, option string) (LineResolution, error) {
	items, err := s.db.ListCatalogItems()
	if err != nil {
		return LineResolution{}, err
	}
	idx := catalog.BuildIndex(items)

	var opt *string
	if trimmed := strings.TrimSpace(option); trimmed != "" {
		opt = &trimmed
	}

	key := catalog.Normalize(text, opt)
	_, known := idx.Lookup(key)
	return LineResolution{
		Key:       key,
		Display:   catalog.Display(key),
		Legacy:    catalog.ToLegacy(key),
		InCatalog: known,
	}, nil
}

package pipeline

import (
	"sync"
	"time"

	"barfops/internal"
	"barfops/internal/catalog"
	"barfops/internal/config"
	"barfops/internal/demand"
	"barfops/internal/storage"
)

// ReportService computes and persists per-location daily demand.
type ReportService struct {
	db    *storage.DB
	cfg   config.Config
	agg   *demand.Aggregator
	locks *KeyedLock
}

func NewReportService(db *storage.DB, cfg config.Config) *ReportService {
	return &ReportService{
		db:    db,
		cfg:   cfg,
		agg:   demand.NewAggregator(cfg.BusinessUTCOffsetHours),
		locks: NewKeyedLock(),
	}
}

type ReportResult struct {
	Day       string
	Locations int
	Rows      int
}

// DailyReport aggregates demand for one day across all configured
// locations, one worker per location, and upserts the non-zero rows.
func (s *ReportService) DailyReport(day string) (ReportResult, error) {
	items, err := s.db.ListCatalogItems()
	if err != nil {
		return ReportResult{}, err
	}
	orders, err := s.db.ListOrders()
	if err != nil {
		return ReportResult{}, err
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	rowsWritten := 0
	var firstErr error

	for _, location := range s.cfg.ReportLocations {
		wg.Add(1)
		go func(location string) {
			defer wg.Done()
			for _, item := range items {
				count := s.agg.DailyDemand(item, orders, location, day)
				if count == 0 {
					continue
				}
				row := internal.DemandRow{Location: location, Day: day, Key: item, Count: count}
				err := s.locks.Do(demandKey(row), func() error {
					return s.db.UpsertDemandRow(row)
				})

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					rowsWritten++
				}
				mu.Unlock()
			}
		}(location)
	}
	wg.Wait()

	if firstErr != nil {
		return ReportResult{}, firstErr
	}

	_ = s.db.SetMetadata("demand.lastReportAt", time.Now().UTC().Format(time.RFC3339))
	return ReportResult{Day: day, Locations: len(s.cfg.ReportLocations), Rows: rowsWritten}, nil
}

func demandKey(row internal.DemandRow) string {
	return row.Location + "|" + row.Day + "|" + catalog.Display(row.Key)
}

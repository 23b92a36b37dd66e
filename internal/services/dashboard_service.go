package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/junlife-hub/house-analysis/internal/acquirer"
	"github.com/junlife-hub/house-analysis/internal/cache"
	"github.com/junlife-hub/house-analysis/internal/config"
	"github.com/junlife-hub/house-analysis/internal/dataprocessing"
	"github.com/junlife-hub/house-analysis/internal/infrastructure"
	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// Data-source modes offered by the sidebar selector.
const (
	// ModeLocalLive merges the historical CSV with a live fetch of the
	// current year.
	ModeLocalLive = "local+live"
	// ModeAllLocal merges the historical CSV with the current-year CSV
	// when present; no network traffic.
	ModeAllLocal = "all-local"
)

// recentLimit bounds the "latest trades" table of the mega view.
const recentLimit = 50

// HistoricalSource loads transaction rows from the local CSV dumps.
type HistoricalSource interface {
	LoadHistorical(ctx context.Context) ([]domain.RawRecord, error)
	LoadLiveYear(ctx context.Context) ([]domain.RawRecord, bool, error)
}

// LiveSource fetches current-period rows from the open-data API.
type LiveSource interface {
	FetchCurrentPeriod(ctx context.Context, apiKey string, year, maxPages int) []domain.RawRecord
}

// DashboardService assembles the merged dataset and derives the two
// analytical views. Acquired rows are memoized in the cache store; the
// derived views are recomputed on every request from the cached dataset.
type DashboardService struct {
	cfg    *config.Config
	csv    HistoricalSource
	live   LiveSource
	cache  *cache.Store
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service with injected sources.
func NewDashboardService(cfg *config.Config, csv HistoricalSource, live LiveSource, store *cache.Store, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cfg:    cfg,
		csv:    csv,
		live:   live,
		cache:  store,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// Refresh invalidates every cached dataset; the next view request
// reloads from disk and network.
func (s *DashboardService) Refresh(ctx context.Context) {
	s.logger.InfoContext(ctx, "refresh requested, clearing dataset cache")
	s.cache.Clear()
}

// CacheStats exposes cache statistics for the health endpoint.
func (s *DashboardService) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}

// MegaView computes the ten-complex comparison view for the given mode.
func (s *DashboardService) MegaView(ctx context.Context, mode string) (*domain.MegaView, error) {
	records, meta, err := s.dataset(ctx, mode)
	if err != nil {
		return nil, err
	}

	groups := dataprocessing.ExtractMegaComplexes(records, config.MegaComplexKeywords)
	recent := dataprocessing.Flatten(groups)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &domain.MegaView{
		Meta:      *meta,
		Recent:    recent,
		Summaries: dataprocessing.Summarize(groups),
		Trend:     dataprocessing.GroupTrends(groups),
	}, nil
}

// DetailView computes the single-complex drill-down for one of the two
// offered unit sizes. An empty record set is not an error: the frontend
// renders the "no trades at this size" notice from it.
func (s *DashboardService) DetailView(ctx context.Context, mode string, area int) (*domain.DetailView, error) {
	if !validArea(area) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidArea, area)
	}

	records, meta, err := s.dataset(ctx, mode)
	if err != nil {
		return nil, err
	}

	result := dataprocessing.ExtractDetail(records, config.DetailComplexKeyword, area)
	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].ContractDate.After(result.Records[j].ContractDate)
	})

	monthly := dataprocessing.MonthlyMean(result.Records)

	return &domain.DetailView{
		Meta:          *meta,
		Complex:       config.DetailComplexKeyword,
		AreaRequested: area,
		AreaUsed:      result.AreaUsed,
		AreaFallback:  result.UsedFallback,
		Records:       result.Records,
		Monthly:       monthly,
		TrendLine:     dataprocessing.FitTrend(monthly),
	}, nil
}

// dataset assembles the merged, normalized, deduplicated dataset for the
// given mode. Acquisition failures degrade the dataset instead of
// failing the request; only an empty end result is an error.
func (s *DashboardService) dataset(ctx context.Context, mode string) ([]domain.TransactionRecord, *domain.DatasetMeta, error) {
	if mode == "" {
		mode = ModeLocalLive
	}

	var raw []domain.RawRecord
	meta := &domain.DatasetMeta{Mode: mode}

	historical, warning := s.loadHistorical(ctx)
	raw = append(raw, historical...)
	meta.Warning = warning

	switch mode {
	case ModeLocalLive:
		liveRows, liveWarning := s.fetchLive(ctx)
		raw = append(raw, liveRows...)
		meta.LiveRows = len(liveRows)
		if meta.Warning == "" {
			meta.Warning = liveWarning
		}
	case ModeAllLocal:
		localRows := s.loadLocalLiveYear(ctx)
		raw = append(raw, localRows...)
		meta.LiveRows = len(localRows)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	records := dataprocessing.Deduplicate(dataprocessing.Normalize(raw))
	if len(records) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	meta.TotalRows = len(records)
	meta.AsOf = latestDate(records)
	infrastructure.DatasetRows.WithLabelValues(mode).Set(float64(len(records)))

	return records, meta, nil
}

// loadHistorical returns the memoized historical CSV rows. A missing or
// unreadable file degrades to an empty slice with a user-visible
// warning.
func (s *DashboardService) loadHistorical(ctx context.Context) ([]domain.RawRecord, string) {
	rows, ok := s.cached(cacheKeyHistorical)
	if ok {
		return rows, ""
	}

	rows, err := s.csv.LoadHistorical(ctx)
	if err != nil {
		if errors.Is(err, acquirer.ErrFileNotFound) {
			s.logger.WarnContext(ctx, "historical file not found", slog.String("error", err.Error()))
			return nil, "historical data file not found"
		}
		s.logger.ErrorContext(ctx, "historical load failed", slog.String("error", err.Error()))
		return nil, "historical data could not be read"
	}

	// Historical data never changes within a cache epoch: no expiry.
	s.cache.Set(cacheKeyHistorical, rows, 0)
	return rows, ""
}

// fetchLive returns the memoized live rows for the current year. A
// missing API key skips the fetch with a warning; the dashboard shows
// historical data only.
func (s *DashboardService) fetchLive(ctx context.Context) ([]domain.RawRecord, string) {
	apiKey := s.cfg.Data.APIKey
	if apiKey == "" {
		return nil, "no API key configured; showing historical data only"
	}

	key := fmt.Sprintf("%s:%d:%d", cacheKeyLive, config.LiveYear, s.cfg.Data.MaxPages)
	rows, ok := s.cached(key)
	if ok {
		return rows, ""
	}

	rows = s.live.FetchCurrentPeriod(ctx, apiKey, config.LiveYear, s.cfg.Data.MaxPages)
	s.cache.Set(key, rows, s.cfg.Data.LiveCacheTTL)
	return rows, ""
}

// loadLocalLiveYear returns the memoized current-year CSV rows, empty
// when the file does not exist.
func (s *DashboardService) loadLocalLiveYear(ctx context.Context) []domain.RawRecord {
	rows, ok := s.cached(cacheKeyLocalLive)
	if ok {
		return rows
	}

	rows, found, err := s.csv.LoadLiveYear(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "current-year CSV load failed", slog.String("error", err.Error()))
		return nil
	}
	if !found {
		return nil
	}

	s.cache.Set(cacheKeyLocalLive, rows, 0)
	return rows
}

// Cache keys are function-and-arguments shaped, one per memoized load.
const (
	cacheKeyHistorical = "csv:historical"
	cacheKeyLocalLive  = "csv:live-year"
	cacheKeyLive       = "api:live"
)

func (s *DashboardService) cached(key string) ([]domain.RawRecord, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		infrastructure.CacheMissesTotal.Inc()
		return nil, false
	}
	rows, ok := v.([]domain.RawRecord)
	if !ok {
		return nil, false
	}
	infrastructure.CacheHitsTotal.Inc()
	return rows, true
}

func validArea(area int) bool {
	for _, a := range config.DetailAreaChoices {
		if a == area {
			return true
		}
	}
	return false
}

func latestDate(records []domain.TransactionRecord) string {
	if len(records) == 0 {
		return ""
	}
	latest := records[0].ContractDate
	for _, rec := range records[1:] {
		if rec.ContractDate.After(latest) {
			latest = rec.ContractDate
		}
	}
	return latest.Format("2006-01-02")
}

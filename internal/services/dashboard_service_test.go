package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junlife-hub/house-analysis/internal/acquirer"
	"github.com/junlife-hub/house-analysis/internal/cache"
	"github.com/junlife-hub/house-analysis/internal/config"
	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// stubCSV implements HistoricalSource.
type stubCSV struct {
	historical    []domain.RawRecord
	historicalErr error
	liveYear      []domain.RawRecord
	liveYearFound bool
	loads         int
}

func (s *stubCSV) LoadHistorical(ctx context.Context) ([]domain.RawRecord, error) {
	s.loads++
	return s.historical, s.historicalErr
}

func (s *stubCSV) LoadLiveYear(ctx context.Context) ([]domain.RawRecord, bool, error) {
	return s.liveYear, s.liveYearFound, nil
}

// stubLive implements LiveSource.
type stubLive struct {
	rows    []domain.RawRecord
	fetches int
}

func (s *stubLive) FetchCurrentPeriod(ctx context.Context, apiKey string, year, maxPages int) []domain.RawRecord {
	s.fetches++
	return s.rows
}

func raw(day, building, area, amount string) domain.RawRecord {
	return domain.RawRecord{
		ContractDay:  day,
		BuildingName: building,
		ArchArea:     area,
		Amount:       amount,
		Floor:        "5",
	}
}

func newTestService(t *testing.T, csv *stubCSV, live *stubLive, apiKey string) (*DashboardService, *cache.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Data.APIKey = apiKey
	store := cache.NewStore()
	t.Cleanup(store.Stop)
	return NewDashboardService(cfg, csv, live, store, slog.Default()), store
}

func TestDashboardService_MegaView(t *testing.T) {
	csv := &stubCSV{historical: []domain.RawRecord{
		raw("20250110", "헬리오시티", "84.9", "230000"),
		raw("20250111", "헬리오시티", "85.1", "240000"),
		raw("20250112", "무명아파트", "84.9", "90000"),
	}}
	live := &stubLive{rows: []domain.RawRecord{
		raw("20260115", "헬리오시티", "84.8", "250000"),
	}}

	svc, _ := newTestService(t, csv, live, "key")

	view, err := svc.MegaView(context.Background(), ModeLocalLive)
	require.NoError(t, err)

	assert.Equal(t, ModeLocalLive, view.Meta.Mode)
	assert.Equal(t, 4, view.Meta.TotalRows)
	assert.Equal(t, 1, view.Meta.LiveRows)
	assert.Equal(t, "2026-01-15", view.Meta.AsOf)
	assert.Empty(t, view.Meta.Warning)

	require.Len(t, view.Summaries, 1)
	assert.Equal(t, "헬리오시티", view.Summaries[0].Name)
	assert.Equal(t, 85.0, view.Summaries[0].MainArea)
	assert.Equal(t, 3, view.Summaries[0].Count)

	require.NotEmpty(t, view.Recent)
	assert.Equal(t, "2026-01-15", view.Recent[0].ContractDate.Format("2006-01-02"),
		"recent trades sort newest first")
}

func TestDashboardService_MissingAPIKeyDegrades(t *testing.T) {
	csv := &stubCSV{historical: []domain.RawRecord{
		raw("20250110", "헬리오시티", "84.9", "230000"),
	}}
	live := &stubLive{rows: []domain.RawRecord{raw("20260115", "헬리오시티", "84.9", "250000")}}

	svc, _ := newTestService(t, csv, live, "")

	view, err := svc.MegaView(context.Background(), ModeLocalLive)
	require.NoError(t, err)

	assert.Zero(t, live.fetches, "no API key means no live request")
	assert.Equal(t, 0, view.Meta.LiveRows)
	assert.Contains(t, view.Meta.Warning, "API key")
}

func TestDashboardService_HistoricalFileMissingDegrades(t *testing.T) {
	csv := &stubCSV{historicalErr: acquirer.ErrFileNotFound}
	live := &stubLive{rows: []domain.RawRecord{raw("20260115", "헬리오시티", "84.9", "250000")}}

	svc, _ := newTestService(t, csv, live, "key")

	view, err := svc.MegaView(context.Background(), ModeLocalLive)
	require.NoError(t, err, "live rows keep the dashboard usable")
	assert.Contains(t, view.Meta.Warning, "not found")
	assert.Equal(t, 1, view.Meta.TotalRows)
}

func TestDashboardService_EmptyDataset(t *testing.T) {
	svc, _ := newTestService(t, &stubCSV{historicalErr: acquirer.ErrFileNotFound}, &stubLive{}, "key")

	_, err := svc.MegaView(context.Background(), ModeLocalLive)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestDashboardService_UnknownMode(t *testing.T) {
	svc, _ := newTestService(t, &stubCSV{historical: []domain.RawRecord{
		raw("20250110", "헬리오시티", "84.9", "230000"),
	}}, &stubLive{}, "key")

	_, err := svc.MegaView(context.Background(), "remote-only")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestDashboardService_AllLocalModeSkipsNetwork(t *testing.T) {
	csv := &stubCSV{
		historical:    []domain.RawRecord{raw("20250110", "헬리오시티", "84.9", "230000")},
		liveYear:      []domain.RawRecord{raw("20260110", "헬리오시티", "84.9", "245000")},
		liveYearFound: true,
	}
	live := &stubLive{rows: []domain.RawRecord{raw("20260115", "헬리오시티", "84.9", "250000")}}

	svc, _ := newTestService(t, csv, live, "key")

	view, err := svc.MegaView(context.Background(), ModeAllLocal)
	require.NoError(t, err)
	assert.Zero(t, live.fetches)
	assert.Equal(t, 1, view.Meta.LiveRows)
	assert.Equal(t, 2, view.Meta.TotalRows)
}

func TestDashboardService_CacheAndRefresh(t *testing.T) {
	csv := &stubCSV{historical: []domain.RawRecord{
		raw("20250110", "헬리오시티", "84.9", "230000"),
	}}
	live := &stubLive{rows: []domain.RawRecord{raw("20260115", "헬리오시티", "84.9", "250000")}}

	svc, _ := newTestService(t, csv, live, "key")
	ctx := context.Background()

	_, err := svc.MegaView(ctx, ModeLocalLive)
	require.NoError(t, err)
	_, err = svc.MegaView(ctx, ModeLocalLive)
	require.NoError(t, err)

	assert.Equal(t, 1, csv.loads, "second render served from cache")
	assert.Equal(t, 1, live.fetches)

	svc.Refresh(ctx)
	_, err = svc.MegaView(ctx, ModeLocalLive)
	require.NoError(t, err)
	assert.Equal(t, 2, csv.loads, "refresh invalidates the whole cache")
	assert.Equal(t, 2, live.fetches)
}

func TestDashboardService_DetailView(t *testing.T) {
	csv := &stubCSV{historical: []domain.RawRecord{
		raw("20250110", "태강아파트", "49.61", "56000"),
		raw("20250215", "태강아파트", "49.61", "58000"),
		raw("20250216", "태강아파트", "59.91", "70000"),
	}}

	svc, _ := newTestService(t, csv, &stubLive{}, "")

	view, err := svc.DetailView(context.Background(), ModeLocalLive, 49)
	require.NoError(t, err)

	assert.Equal(t, 49, view.AreaRequested)
	assert.Equal(t, 49, view.AreaUsed)
	assert.False(t, view.AreaFallback)
	require.Len(t, view.Records, 2)
	assert.Equal(t, "2025-02-15", view.Records[0].ContractDate.Format("2006-01-02"),
		"detail records sort newest first")
	require.Len(t, view.Monthly, 2)
	require.Len(t, view.TrendLine, 2, "two monthly points admit a fitted line")
}

func TestDashboardService_DetailViewFallbackArea(t *testing.T) {
	csv := &stubCSV{historical: []domain.RawRecord{
		raw("20250110", "태강아파트", "50.2", "56000"),
	}}

	svc, _ := newTestService(t, csv, &stubLive{}, "")

	view, err := svc.DetailView(context.Background(), ModeLocalLive, 49)
	require.NoError(t, err)
	assert.Equal(t, 50, view.AreaUsed)
	assert.True(t, view.AreaFallback)
}

func TestDashboardService_DetailViewSinglePointOmitsTrend(t *testing.T) {
	csv := &stubCSV{historical: []domain.RawRecord{
		raw("20250110", "태강아파트", "49.61", "56000"),
	}}

	svc, _ := newTestService(t, csv, &stubLive{}, "")

	view, err := svc.DetailView(context.Background(), ModeLocalLive, 49)
	require.NoError(t, err)
	assert.Nil(t, view.TrendLine)
}

func TestDashboardService_DetailViewInvalidArea(t *testing.T) {
	svc, _ := newTestService(t, &stubCSV{}, &stubLive{}, "")

	_, err := svc.DetailView(context.Background(), ModeLocalLive, 84)
	assert.ErrorIs(t, err, ErrInvalidArea)
}

func TestDashboardService_DuplicateRowsAcrossSourcesCollapse(t *testing.T) {
	shared := raw("20260110", "헬리오시티", "84.9", "250000")
	csv := &stubCSV{historical: []domain.RawRecord{
		raw("20250110", "헬리오시티", "84.9", "230000"),
		shared,
	}}
	live := &stubLive{rows: []domain.RawRecord{shared}}

	svc, _ := newTestService(t, csv, live, "key")

	view, err := svc.MegaView(context.Background(), ModeLocalLive)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Meta.TotalRows, "overlapping rows from both sources dedupe")
}

package app

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junlife-hub/house-analysis/internal/acquirer"
	"github.com/junlife-hub/house-analysis/internal/cache"
	"github.com/junlife-hub/house-analysis/internal/config"
	"github.com/junlife-hub/house-analysis/internal/services"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Data.DataDir = t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	a := &Application{
		Config: cfg,
		Logger: logger,
		Cache:  cache.NewStore(),
	}
	t.Cleanup(a.Cache.Stop)

	csvLoader := acquirer.NewCSVLoader(cfg.ResolveDataDir(), logger)
	apiClient := acquirer.NewClient(cfg.Data.APIBaseURL, logger)
	a.DashboardService = services.NewDashboardService(cfg, csvLoader, apiClient, a.Cache, logger)

	a.setupRouter()
	return a
}

func TestApplication_HealthRoute(t *testing.T) {
	a := newTestApplication(t)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestApplication_MetricsRoute(t *testing.T) {
	a := newTestApplication(t)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestApplication_EmptyDatasetReturns422(t *testing.T) {
	a := newTestApplication(t)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	// No CSVs exist and no API key is configured, so the merged
	// dataset is empty.
	resp, err := http.Get(srv.URL + "/api/dashboard/mega?mode=all-local")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestApplication_SecurityHeaders(t *testing.T) {
	a := newTestApplication(t)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

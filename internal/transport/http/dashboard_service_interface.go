package http

import (
	"context"

	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

// DashboardServiceInterface defines the contract for dashboard operations.
// Handlers depend on this interface rather than the concrete service so
// tests can substitute fakes.
type DashboardServiceInterface interface {
	// MegaView assembles the mega-complex dashboard for the given mode.
	MegaView(ctx context.Context, mode string) (*domain.MegaView, error)

	// DetailView assembles the single-complex drill-down for the given
	// mode and requested area bucket.
	DetailView(ctx context.Context, mode string, area int) (*domain.DetailView, error)

	// Refresh drops all cached datasets so the next request reloads.
	Refresh(ctx context.Context)

	// CacheStats reports cache entry counts for diagnostics.
	CacheStats() map[string]interface{}
}

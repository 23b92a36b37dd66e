package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/junlife-hub/house-analysis/internal/errors"
	"github.com/junlife-hub/house-analysis/internal/infrastructure"
	"github.com/junlife-hub/house-analysis/internal/services"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/mega", h.GetMega)
	r.Get("/detail", h.GetDetail)
	r.Post("/refresh", h.Refresh)

	return r
}

// GetMega handles GET /api/dashboard/mega
func (h *DashboardHandler) GetMega(w http.ResponseWriter, r *http.Request) {
	traceID := infrastructure.GetTraceID(r.Context())
	mode := r.URL.Query().Get("mode")

	h.logger.InfoContext(r.Context(), "building mega view",
		slog.String("trace_id", traceID),
		slog.String("mode", mode),
	)

	view, err := h.service.MegaView(r.Context(), mode)
	if err != nil {
		h.handleServiceError(w, r, err, mode)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
		"count":  len(view.Recent),
	})
}

// GetDetail handles GET /api/dashboard/detail
func (h *DashboardHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	traceID := infrastructure.GetTraceID(r.Context())
	mode := r.URL.Query().Get("mode")

	areaStr := r.URL.Query().Get("area")
	if areaStr == "" {
		areaStr = "49"
	}

	area, err := strconv.Atoi(areaStr)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("area", "Area must be an integer number of square meters"))
		return
	}

	h.logger.InfoContext(r.Context(), "building detail view",
		slog.String("trace_id", traceID),
		slog.String("mode", mode),
		slog.Int("area", area),
	)

	view, err := h.service.DetailView(r.Context(), mode, area)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArea) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("area",
				fmt.Sprintf("Unsupported area bucket: %d", area)))
			return
		}
		h.handleServiceError(w, r, err, mode)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   view,
		"count":  len(view.Records),
	})
}

// Refresh handles POST /api/dashboard/refresh
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	traceID := infrastructure.GetTraceID(r.Context())

	h.logger.InfoContext(r.Context(), "refreshing cached datasets",
		slog.String("trace_id", traceID),
	)

	h.service.Refresh(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   map[string]string{"message": "cache cleared"},
	})
}

// handleServiceError maps known service errors to API errors
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, mode string) {
	h.logger.ErrorContext(r.Context(), "dashboard request failed",
		slog.String("error", err.Error()),
		slog.String("mode", mode),
	)

	if errors.Is(err, services.ErrUnknownMode) {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("mode",
			fmt.Sprintf("Unknown mode %q. Must be one of: %s, %s", mode, services.ModeLocalLive, services.ModeAllLocal)))
		return
	}

	if errors.Is(err, services.ErrEmptyDataset) {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity,
			"EMPTY_DATASET",
			"No transaction data available for the selected mode",
			map[string]interface{}{"mode": mode},
		))
		return
	}

	h.errorHandler.HandleError(w, r, err)
}

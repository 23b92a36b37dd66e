package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/junlife-hub/house-analysis/internal/errors"
	"github.com/junlife-hub/house-analysis/internal/exporter"
	"github.com/junlife-hub/house-analysis/internal/services"
)

// ExportHandler serves dashboard datasets as downloadable files
type ExportHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler
func NewExportHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{view}.{format}", h.Download)
	return r
}

// Download handles GET /api/export/{view}.{format}
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	format := chi.URLParam(r, "format")
	mode := r.URL.Query().Get("mode")

	if format != "csv" && format != "xlsx" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format",
			fmt.Sprintf("Unsupported format %q. Must be csv or xlsx", format)))
		return
	}

	table, err := h.buildTable(r, view, mode)
	if err != nil {
		h.handleExportError(w, r, err, view, mode)
		return
	}

	filename := fmt.Sprintf("%s-%s.%s", table.Name, time.Now().Format("20060102"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	h.logger.InfoContext(r.Context(), "exporting dataset",
		slog.String("view", view),
		slog.String("format", format),
		slog.String("filename", filename),
	)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = exporter.WriteCSV(w, table)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = exporter.WriteXLSX(w, table)
	}
	if err != nil {
		// Headers are already sent, log only
		h.logger.ErrorContext(r.Context(), "export write failed",
			slog.String("error", err.Error()),
			slog.String("view", view),
		)
	}
}

func (h *ExportHandler) buildTable(r *http.Request, view, mode string) (exporter.Table, error) {
	switch view {
	case "mega":
		mv, err := h.service.MegaView(r.Context(), mode)
		if err != nil {
			return exporter.Table{}, err
		}
		return exporter.MegaTable(mv), nil
	case "detail":
		areaStr := r.URL.Query().Get("area")
		if areaStr == "" {
			areaStr = "49"
		}
		area, err := strconv.Atoi(areaStr)
		if err != nil {
			return exporter.Table{}, services.ErrInvalidArea
		}
		dv, err := h.service.DetailView(r.Context(), mode, area)
		if err != nil {
			return exporter.Table{}, err
		}
		return exporter.DetailTable(dv), nil
	default:
		return exporter.Table{}, fmt.Errorf("unknown export view %q", view)
	}
}

func (h *ExportHandler) handleExportError(w http.ResponseWriter, r *http.Request, err error, view, mode string) {
	h.logger.ErrorContext(r.Context(), "export failed",
		slog.String("error", err.Error()),
		slog.String("view", view),
		slog.String("mode", mode),
	)

	switch {
	case errors.Is(err, services.ErrInvalidArea):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("area", "Area must be one of the supported buckets"))
	case errors.Is(err, services.ErrUnknownMode):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("mode", fmt.Sprintf("Unknown mode %q", mode)))
	case errors.Is(err, services.ErrEmptyDataset):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusUnprocessableEntity,
			"EMPTY_DATASET",
			"No transaction data available to export",
		))
	default:
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest,
			"INVALID_EXPORT",
			"Export request could not be served",
			map[string]interface{}{"view": view},
		))
	}
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListRegions handles GET /api/regions
func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.ListRegions(r.Context())
	if err != nil {
		h.logger.Error("failed to list regions",
			slog.String("error", err.Error()),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to list regions")
		return
	}

	h.respondJSON(w, http.StatusOK, regions)
}

// RegionSummaries handles GET /api/regions/summary
func (h *Handler) RegionSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.RegionSummaries(r.Context())
	if err != nil {
		h.logger.Error("failed to build region summaries",
			slog.String("error", err.Error()),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to build region summaries")
		return
	}

	h.respondJSON(w, http.StatusOK, summaries)
}

// GetForecast handles GET /api/regions/{id}/forecast
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "region id is required")
		return
	}

	grid, err := h.service.RegionForecast(r.Context(), id)
	if err != nil {
		h.logger.Warn("failed to get region forecast",
			slog.String("region", id),
			slog.String("error", err.Error()),
		)
		h.respondError(w, statusFor(err), err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, grid)
}
